package models

// RoleUser — единственная роль, которую получает любой клиент.
const RoleUser = "ROLE_USER"

// CustomerDTO — внешнее представление клиента. Хеш пароля сюда не попадает.
type CustomerDTO struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Gender         Gender   `json:"gender"`
	Age            int      `json:"age"`
	Roles          []string `json:"roles"`
	Username       string   `json:"username"`
	ProfileImageID string   `json:"profile_image_id,omitempty"`
}

// NewCustomerDTO проецирует доменную модель во внешнее представление.
func NewCustomerDTO(c Customer) CustomerDTO {
	return CustomerDTO{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Gender:         c.Gender,
		Age:            c.Age,
		Roles:          []string{RoleUser},
		Username:       c.Email,
		ProfileImageID: c.ProfileImageID,
	}
}
