package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/customers-service/internal/errors"
	"github.com/pribylovaa/customers-service/internal/models"
	"github.com/pribylovaa/customers-service/internal/service"
)

// CustomerService — операции сервисного слоя, которые нужны хендлерам.
type CustomerService interface {
	ListCustomers(ctx context.Context) ([]models.CustomerDTO, error)
	GetCustomer(ctx context.Context, id int64) (*models.CustomerDTO, error)
	RegisterCustomer(ctx context.Context, input service.RegisterCustomerInput) (int64, error)
	UpdateCustomer(ctx context.Context, id int64, input service.UpdateCustomerInput) error
	DeleteCustomer(ctx context.Context, id int64) error
	UploadProfileImage(ctx context.Context, id int64, r io.Reader) error
	GetProfileImage(ctx context.Context, id int64) ([]byte, error)
}

var _ CustomerService = (*service.Service)(nil)

// Handlers агрегирует зависимости REST-хендлеров.
type Handlers struct {
	Customers CustomerService
}

func New(svc CustomerService) *Handlers {
	return &Handlers{Customers: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// customerID разбирает {id} из пути: положительное целое.
func customerID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apierrors.BadRequest("invalid customer id")
	}

	return id, nil
}
