package request

type CreateLocationRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}
