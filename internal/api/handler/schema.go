package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// loginRequest is deliberately unvalidated: empty credentials fail inside the
// service with the same error as wrong credentials, so a 400 here would leak
// which check a client tripped.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Notes ---

type createNoteRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
}

type updateNoteRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// --- Users ---

// createUserRequest is the admin-only account creation payload. Unlike public
// registration it may set the role.
type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

type updateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"  validate:"omitempty,email"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"   validate:"omitempty,oneof=user admin"`
}
