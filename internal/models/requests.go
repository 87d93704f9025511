package models

// Запрос на регистрацию клиента (POST /customers).
// Gender принимаем строкой: неизвестный тег отклоняет сервис (ErrInvalidGender).
type RegisterCustomerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
}

type RegisterCustomerResponse struct {
	ID int64 `json:"id"`
}

// Частичный апдейт (PUT /customers/{id}); отсутствующее поле не меняется.
type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Age   *int    `json:"age,omitempty"`
}
