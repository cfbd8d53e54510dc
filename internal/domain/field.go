package domain

// TimeField identifies one of the six editable clock-time fields of an
// entry. It is a closed set: updates address fields by name, and the
// merge operation rejects anything outside it.
type TimeField string

const (
	FieldStartTime  TimeField = "startTime"
	FieldEndTime    TimeField = "endTime"
	FieldBreakStart TimeField = "breakStart"
	FieldBreakEnd   TimeField = "breakEnd"
	FieldLunchStart TimeField = "lunchStart"
	FieldLunchEnd   TimeField = "lunchEnd"
)

// TimeFields lists all editable clock-time fields in their display order.
var TimeFields = []TimeField{
	FieldStartTime,
	FieldBreakStart,
	FieldBreakEnd,
	FieldLunchStart,
	FieldLunchEnd,
	FieldEndTime,
}

// IsValid checks if the field names one of the six clock-time fields.
func (f TimeField) IsValid() bool {
	switch f {
	case FieldStartTime, FieldEndTime, FieldBreakStart, FieldBreakEnd, FieldLunchStart, FieldLunchEnd:
		return true
	default:
		return false
	}
}

// Label returns the German form label shown for the field.
func (f TimeField) Label() string {
	switch f {
	case FieldStartTime:
		return "Arbeitsbeginn"
	case FieldBreakStart:
		return "Frühstücksbeginn"
	case FieldBreakEnd:
		return "Frühstücksende"
	case FieldLunchStart:
		return "Mittagspause Beginn"
	case FieldLunchEnd:
		return "Mittagspause Ende"
	case FieldEndTime:
		return "Arbeitsende"
	default:
		return string(f)
	}
}
