package httperr

// Códigos de falha de pré-condição detectados no próprio cliente,
// antes de qualquer chamada à API.
const (
	CodePatientIDMissing  = "patient_id_missing"
	CodeInvalidScheduleID = "invalid_schedule_id"
	CodeInvalidPatientID  = "invalid_patient_id"
	CodeInvalidForm       = "invalid_form"

	CodeNotFound           = "not_found"
	CodeStorageUnavailable = "storage_unavailable"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}
