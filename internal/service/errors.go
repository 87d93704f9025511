package service

import "errors"

// Виды ошибок сервиса. Транспорт сопоставляет статус только по виду.
var (
	// ErrInvalidArgument — некорректные входные данные или пустой апдейт.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — сущность не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — конфликт уникальности (email).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInternal — сбой хранилища/БД/чтения payload; исходная причина остаётся в цепочке.
	ErrInternal = errors.New("internal")
)

// reasonError — конкретная причина с устойчивым сообщением для клиента.
// Unwrap отдаёт вид ошибки, поэтому errors.Is(err, ErrNotFound) работает для всех причин NotFound.
type reasonError struct {
	kind error
	msg  string
}

func (e *reasonError) Error() string { return e.msg }
func (e *reasonError) Unwrap() error { return e.kind }

func newReason(kind error, msg string) error {
	return &reasonError{kind: kind, msg: msg}
}

var (
	ErrCustomerNotFound     = newReason(ErrNotFound, "customer not found")
	ErrProfileImageNotFound = newReason(ErrNotFound, "profile image not found")
	ErrEmailTaken           = newReason(ErrAlreadyExists, "email already taken")
	ErrNoChanges            = newReason(ErrInvalidArgument, "no data changes found")

	ErrInvalidName     = newReason(ErrInvalidArgument, "name must not be empty")
	ErrInvalidEmail    = newReason(ErrInvalidArgument, "email is invalid")
	ErrInvalidAge      = newReason(ErrInvalidArgument, "age must be between 1 and 2147483647")
	ErrInvalidGender   = newReason(ErrInvalidArgument, "gender must be MALE or FEMALE")
	ErrInvalidPassword = newReason(ErrInvalidArgument, "password must not be empty")
	ErrEmptyImage      = newReason(ErrInvalidArgument, "profile image is empty")
	ErrImageTooLarge   = newReason(ErrInvalidArgument, "profile image is too large")
)

// Reason возвращает сообщение для клиента, если в цепочке err есть причина.
// Для прочих ошибок возвращает "".
func Reason(err error) string {
	var re *reasonError
	if errors.As(err, &re) {
		return re.msg
	}

	return ""
}
