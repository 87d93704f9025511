package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/customers-service/internal/errors"
	"github.com/pribylovaa/customers-service/internal/models"
	"github.com/pribylovaa/customers-service/internal/service"
)

func (h *Handlers) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Customers.ListCustomers(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, customers)
}

func (h *Handlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	customer, err := h.Customers.GetCustomer(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

func (h *Handlers) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterCustomerRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.BadRequest("invalid request body"))
		return
	}

	// Неизвестный тег уходит в сервис как GenderUnspecified и отклоняется там.
	gender, _ := models.ParseGender(in.Gender)

	id, err := h.Customers.RegisterCustomer(r.Context(), service.RegisterCustomerInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Age:      in.Age,
		Gender:   gender,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.RegisterCustomerResponse{ID: id})
}

func (h *Handlers) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in models.UpdateCustomerRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.BadRequest("invalid request body"))
		return
	}

	err = h.Customers.UpdateCustomer(r.Context(), id, service.UpdateCustomerInput{
		Name:  in.Name,
		Email: in.Email,
		Age:   in.Age,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.Customers.DeleteCustomer(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
