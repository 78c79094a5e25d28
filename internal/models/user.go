package models

// UserRequest is the body accepted by POST and PUT /api/usuarios. Nombre is
// nil when the field was absent from the body.
type UserRequest struct {
	Nombre *string `json:"nombre" form:"nombre" validate:"required,nonempty,min=3"`
}

// Name returns the submitted name, or "" when none was sent.
func (r UserRequest) Name() string {
	if r.Nombre == nil {
		return ""
	}
	return *r.Nombre
}
