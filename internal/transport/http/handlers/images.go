package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	apierrors "github.com/pribylovaa/customers-service/internal/errors"
)

// profileImageField — имя поля multipart-формы с файлом изображения.
const profileImageField = "file"

// UploadProfileImage принимает multipart/form-data и стримит часть "file" в сервис.
// Ограничение размера применяет сервис.
func (h *Handlers) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	part, err := filePart(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	defer part.Close()

	if err := h.Customers.UploadProfileImage(r.Context(), id, part); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetProfileImage отдаёт байты изображения с определённым по содержимому Content-Type.
func (h *Handlers) GetProfileImage(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	data, err := h.Customers.GetProfileImage(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// filePart находит в теле часть с именем profileImageField.
func filePart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, apierrors.BadRequest("multipart/form-data body expected")
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, apierrors.BadRequest("file part is required")
		}
		if err != nil {
			return nil, apierrors.BadRequest("malformed multipart body")
		}

		if part.FormName() == profileImageField {
			return part, nil
		}
		_ = part.Close()
	}
}
