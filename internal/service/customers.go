package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/customers-service/internal/models"
	"github.com/pribylovaa/customers-service/internal/pkg/log"
	"github.com/pribylovaa/customers-service/internal/pkg/redact"
	"github.com/pribylovaa/customers-service/internal/storage"
)

// Входные структуры сервисного слоя.
type RegisterCustomerInput struct {
	Name     string
	Email    string
	Password string
	Age      int
	Gender   models.Gender
}

// UpdateCustomerInput — частичный апдейт: nil означает «поле не передано».
// Поле, равное текущему значению, изменением не считается.
type UpdateCustomerInput struct {
	Name  *string
	Email *string
	Age   *int
}

// ListCustomers возвращает клиентов (не более storage.SelectAllLimit) в виде DTO.
func (s *Service) ListCustomers(ctx context.Context) ([]models.CustomerDTO, error) {
	const op = "service/customers/ListCustomers"
	lg := log.ForOp(ctx, op)

	customers, err := s.customers.SelectAll(ctx)
	if err != nil {
		lg.Error("storage error on SelectAll", "err", err)

		return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	result := make([]models.CustomerDTO, 0, len(customers))
	for _, c := range customers {
		result = append(result, models.NewCustomerDTO(c))
	}

	return result, nil
}

// GetCustomer возвращает клиента по id.
// Ошибки: ErrCustomerNotFound, ErrInternal.
func (s *Service) GetCustomer(ctx context.Context, id int64) (*models.CustomerDTO, error) {
	const op = "service/customers/GetCustomer"
	lg := log.ForOp(ctx, op, "customer_id", id)

	customer, err := s.customers.SelectByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundCustomer):
			lg.Warn("customer not found")

			return nil, fmt.Errorf("%s: %w", op, ErrCustomerNotFound)
		default:
			lg.Error("storage error on SelectByID", "err", err)

			return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
		}
	}

	dto := models.NewCustomerDTO(*customer)

	return &dto, nil
}

// RegisterCustomer создаёт клиента и возвращает назначенный id.
//
// Порядок:
//   - валидация входа (до любых обращений к хранилищу);
//   - проверка занятости email (ErrEmailTaken);
//   - хеширование пароля;
//   - вставка без profile_image_id.
//
// Конфликт UNIQUE(email) при вставке (гонка с параллельной регистрацией)
// также отдаётся как ErrEmailTaken.
func (s *Service) RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (int64, error) {
	const op = "service/customers/RegisterCustomer"
	lg := log.ForOp(ctx, op)

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if err := validateRegistration(input); err != nil {
		lg.Warn("invalid argument", "reason", Reason(err))

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	taken, err := s.customers.ExistsByEmail(ctx, input.Email)
	if err != nil {
		lg.Error("storage error on ExistsByEmail", "err", err)

		return 0, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	if taken {
		lg.Warn("email already taken", "email", redact.Email(input.Email))

		return 0, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		lg.Error("password hashing failed", "err", err)

		return 0, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	id, err := s.customers.Insert(ctx, &models.Customer{
		Name:     input.Name,
		Email:    input.Email,
		Password: hash,
		Age:      input.Age,
		Gender:   input.Gender,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			lg.Warn("email already taken on insert", "email", redact.Email(input.Email))

			return 0, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		default:
			lg.Error("storage error on Insert", "err", err)

			return 0, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
		}
	}

	lg.Info("customer registered", "customer_id", id)

	return id, nil
}

// DeleteCustomer удаляет запись клиента. Объектное хранилище не трогается.
// Ошибки: ErrCustomerNotFound (без вызова удаления), ErrInternal.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	const op = "service/customers/DeleteCustomer"
	lg := log.ForOp(ctx, op, "customer_id", id)

	exists, err := s.customers.ExistsByID(ctx, id)
	if err != nil {
		lg.Error("storage error on ExistsByID", "err", err)

		return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	if !exists {
		lg.Warn("customer not found")

		return fmt.Errorf("%s: %w", op, ErrCustomerNotFound)
	}

	if err := s.customers.DeleteByID(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundCustomer):
			lg.Warn("customer deleted concurrently")

			return fmt.Errorf("%s: %w", op, ErrCustomerNotFound)
		default:
			lg.Error("storage error on DeleteByID", "err", err)

			return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
		}
	}

	lg.Info("customer deleted")

	return nil
}

// UpdateCustomer применяет частичный апдейт.
//
// Поведение:
//   - читает текущую запись (ErrCustomerNotFound), затем проверяет переданные поля;
//   - name и age ставятся в изменения, только если переданы и отличаются;
//   - email: если передан и отличается, заново проверяется занятость (ErrEmailTaken);
//   - если ничего не изменилось, возвращает ErrNoChanges без записи;
//   - иначе пишет объединённую запись одним вызовом Update.
func (s *Service) UpdateCustomer(ctx context.Context, id int64, input UpdateCustomerInput) error {
	const op = "service/customers/UpdateCustomer"
	lg := log.ForOp(ctx, op, "customer_id", id)

	customer, err := s.customers.SelectByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundCustomer):
			lg.Warn("customer not found")

			return fmt.Errorf("%s: %w", op, ErrCustomerNotFound)
		default:
			lg.Error("storage error on SelectByID", "err", err)

			return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
		}
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			lg.Warn("invalid argument", "reason", Reason(ErrInvalidName))

			return fmt.Errorf("%s: %w", op, ErrInvalidName)
		}
		input.Name = &name
	}

	if input.Age != nil && !validAge(*input.Age) {
		lg.Warn("invalid argument", "reason", Reason(ErrInvalidAge))

		return fmt.Errorf("%s: %w", op, ErrInvalidAge)
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if !validEmail(email) {
			lg.Warn("invalid argument", "reason", Reason(ErrInvalidEmail))

			return fmt.Errorf("%s: %w", op, ErrInvalidEmail)
		}
		input.Email = &email
	}

	changed := false

	if input.Name != nil && *input.Name != customer.Name {
		customer.Name = *input.Name
		changed = true
	}

	if input.Age != nil && *input.Age != customer.Age {
		customer.Age = *input.Age
		changed = true
	}

	if input.Email != nil && *input.Email != customer.Email {
		taken, err := s.customers.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			lg.Error("storage error on ExistsByEmail", "err", err)

			return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
		}

		if taken {
			lg.Warn("email already taken", "email", redact.Email(*input.Email))

			return fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		customer.Email = *input.Email
		changed = true
	}

	if !changed {
		lg.Warn("no data changes found")

		return fmt.Errorf("%s: %w", op, ErrNoChanges)
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			lg.Warn("email already taken on update")

			return fmt.Errorf("%s: %w", op, ErrEmailTaken)
		case errors.Is(err, storage.ErrNotFoundCustomer):
			lg.Warn("customer deleted concurrently")

			return fmt.Errorf("%s: %w", op, ErrCustomerNotFound)
		default:
			lg.Error("storage error on Update", "err", err)

			return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
		}
	}

	lg.Info("customer updated")

	return nil
}

func validateRegistration(input RegisterCustomerInput) error {
	switch {
	case input.Name == "":
		return ErrInvalidName
	case !validEmail(input.Email):
		return ErrInvalidEmail
	case input.Password == "":
		return ErrInvalidPassword
	case !validAge(input.Age):
		return ErrInvalidAge
	case !input.Gender.Valid():
		return ErrInvalidGender
	}

	return nil
}

// validAge проверяет, что возраст помещается в колонку INT: 1..models.MaxAge.
func validAge(age int) bool {
	return age > 0 && age <= models.MaxAge
}

// validEmail — минимальная проверка формы: непустая локальная часть и домен вокруг '@'.
func validEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t\r\n")
}
