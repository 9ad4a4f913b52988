package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"tripdiary/internal/domain/models"
	"tripdiary/internal/utils"

	"github.com/go-playground/validator/v10"
)

// InvalidPayloadMessage is the top-level message for every rejected body.
const InvalidPayloadMessage = "Invalid payload"

// CompanionPayload is the wire form of a companion before validation.
// Pointers distinguish a missing key from a zero value.
type CompanionPayload struct {
	ID           *string `json:"id" validate:"required"`
	Name         *string `json:"name"`
	Age          *int    `json:"age"`
	Relationship *string `json:"relationship"`
}

// TripPayload is the wire form of a trip before validation. Timestamps stay
// strings until Trip() so a bad value is reported against its own field.
type TripPayload struct {
	ID             *string      `json:"id" validate:"required"`
	TripNumber     *int         `json:"tripNumber" validate:"required,gte=0"`
	Origin         *string      `json:"origin" validate:"required,min=1"`
	OriginLat      *float64     `json:"originLat"`
	OriginLng      *float64     `json:"originLng"`
	Destination    *string      `json:"destination" validate:"required,min=1"`
	DestinationLat *float64     `json:"destinationLat"`
	DestinationLng *float64     `json:"destinationLng"`
	Mode           *models.Mode `json:"mode" validate:"required,trip_mode"`
	DepartureTime  *string      `json:"departureTime" validate:"required,iso8601"`
	Companions     Companions   `json:"companions" validate:"required,dive"`
	ConsentGiven   *bool        `json:"consentGiven" validate:"required"`
	Notes          *string      `json:"notes"`
	CreatedAt      *string      `json:"createdAt" validate:"required,iso8601"`
	SyncedAt       *string      `json:"syncedAt" validate:"omitempty,iso8601"`
}

// BulkPayload is the body of a bulk sync request.
type BulkPayload struct {
	Trips TripPayloads `json:"trips" validate:"required,dive"`
}

// Companions decodes element by element so a type error keeps its index.
type Companions []CompanionPayload

func (c *Companions) UnmarshalJSON(b []byte) error {
	items, err := decodeElements[CompanionPayload](b, "companions")
	*c = items
	return err
}

// TripPayloads decodes element by element so a type error keeps its index.
type TripPayloads []TripPayload

func (t *TripPayloads) UnmarshalJSON(b []byte) error {
	items, err := decodeElements[TripPayload](b, "trips")
	*t = items
	return err
}

// pathError prefixes the location of a decode failure inside a nested value.
type pathError struct {
	Prefix []any
	Err    error
}

func (e *pathError) Error() string { return fmt.Sprintf("%v: %v", e.Prefix, e.Err) }

func (e *pathError) Unwrap() error { return e.Err }

func decodeElements[T any](b []byte, field string) ([]T, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, &pathError{Prefix: []any{field}, Err: err}
	}
	if raws == nil {
		return nil, nil
	}
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, &pathError{Prefix: []any{field, i}, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("trip_mode", func(fl validator.FieldLevel) bool {
		return models.Mode(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, err := parseTimestamp(fl.Field().String())
		return err == nil
	})
	return v
}

// ValidateTrip checks one trip payload. It returns nil or a ValidationError
// listing every issue.
func ValidateTrip(p TripPayload) error {
	return toValidationError(validate.Struct(p))
}

// ValidateBulk checks every trip in a bulk payload; issue paths are prefixed
// with ["trips", index].
func ValidateBulk(p BulkPayload) error {
	return toValidationError(validate.Struct(p))
}

// DecodeError turns a JSON decoding failure into a ValidationError so that
// malformed bodies are reported with the same issue shape as schema failures.
func DecodeError(err error) error {
	if err == nil {
		return nil
	}
	return ValidationError{
		Msg:    InvalidPayloadMessage,
		Issues: []Issue{decodeIssue(err)},
		Err:    err,
	}
}

func decodeIssue(err error) Issue {
	prefix := []any{}
	for {
		var pe *pathError
		if !errors.As(err, &pe) {
			break
		}
		prefix = append(prefix, pe.Prefix...)
		err = pe.Err
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &typeErr):
		return Issue{
			Code:    IssueInvalidType,
			Path:    append(prefix, splitPath(typeErr.Field)...),
			Message: fmt.Sprintf("Expected %s, received %s", typeErr.Type, typeErr.Value),
		}
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return Issue{Code: IssueInvalidJSON, Path: []any{}, Message: "Malformed JSON body"}
	default:
		return Issue{Code: IssueInvalidJSON, Path: []any{}, Message: err.Error()}
	}
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return InternalError{Msg: "validation failed", Err: err}
	}
	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, issueFromFieldError(fe))
	}
	return ValidationError{Msg: InvalidPayloadMessage, Issues: issues, Err: err}
}

func issueFromFieldError(fe validator.FieldError) Issue {
	path := namespacePath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return Issue{Code: IssueInvalidType, Path: path, Message: "Required"}
	case "min":
		return Issue{Code: IssueTooSmall, Path: path, Message: fmt.Sprintf("String must contain at least %s character(s)", fe.Param())}
	case "gte":
		return Issue{Code: IssueTooSmall, Path: path, Message: fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())}
	case "trip_mode":
		return Issue{Code: IssueInvalidEnumValue, Path: path, Message: enumMessage(fe.Value())}
	case "iso8601":
		return Issue{Code: IssueInvalidString, Path: path, Message: "Invalid datetime"}
	default:
		return Issue{Code: IssueCustom, Path: path, Message: fe.Error()}
	}
}

func enumMessage(received any) string {
	quoted := make([]string, 0, len(models.Modes()))
	for _, m := range models.Modes() {
		quoted = append(quoted, "'"+string(m)+"'")
	}
	return fmt.Sprintf("Invalid enum value. Expected %s, received '%v'", strings.Join(quoted, " | "), received)
}

// namespacePath converts "BulkPayload.trips[2].mode" into ["trips", 2, "mode"].
// The leading struct name is dropped.
func namespacePath(ns string) []any {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return splitPath(ns)
}

func splitPath(s string) []any {
	out := []any{}
	if s == "" {
		return out
	}
	for _, part := range strings.Split(s, ".") {
		for part != "" {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				out = append(out, pathElem(part))
				break
			}
			if open > 0 {
				out = append(out, pathElem(part[:open]))
			}
			end := strings.IndexByte(part[open:], ']')
			if end < 0 {
				out = append(out, part[open:])
				break
			}
			out = append(out, pathElem(part[open+1:open+end]))
			part = part[open+end+1:]
		}
	}
	return out
}

func pathElem(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}

// Trip converts a validated payload into the domain model. Call it only after
// ValidateTrip returned nil.
func (p TripPayload) Trip() models.Trip {
	t := models.Trip{
		ID:             deref(p.ID),
		TripNumber:     deref(p.TripNumber),
		Origin:         deref(p.Origin),
		OriginLat:      p.OriginLat,
		OriginLng:      p.OriginLng,
		Destination:    deref(p.Destination),
		DestinationLat: p.DestinationLat,
		DestinationLng: p.DestinationLng,
		Mode:           deref(p.Mode),
		DepartureTime:  timestampOf(p.DepartureTime),
		Companions:     make([]models.Companion, 0, len(p.Companions)),
		ConsentGiven:   deref(p.ConsentGiven),
		Notes:          p.Notes,
		CreatedAt:      timestampOf(p.CreatedAt),
	}
	if p.SyncedAt != nil {
		synced := timestampOf(p.SyncedAt)
		t.SyncedAt = &synced
	}
	for _, c := range p.Companions {
		t.Companions = append(t.Companions, models.Companion{
			ID:           deref(c.ID),
			Name:         c.Name,
			Age:          c.Age,
			Relationship: c.Relationship,
		})
	}
	return t
}

// parseTimestamp reads an ISO-8601 date-time; values without an offset are
// taken as UTC.
func parseTimestamp(s string) (time.Time, error) {
	return utils.ParseDeparture(s, time.UTC)
}

func timestampOf(s *string) time.Time {
	if s == nil {
		return time.Time{}
	}
	t, _ := parseTimestamp(*s)
	return t
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
