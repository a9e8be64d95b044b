package user

import "vinylscan/internal/app/server/api/http/response"

type credentials struct {
	_        struct{} `json:"-" additionalProperties:"true"`
	Email    string   `json:"email,omitempty" required:"false" doc:"Account email"`
	Password string   `json:"password,omitempty" required:"false" doc:"Account password"`
}

type registerInput struct {
	Body *credentials `required:"false"`
}

type loginInput struct {
	Body *credentials `required:"false"`
}

type logoutInput struct {
	Session       string `cookie:"vinylscan_session" required:"false"`
	Authorization string `header:"Authorization" required:"false"`
}

type userView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type sessionView struct {
	AccessToken string   `json:"access_token"`
	ExpiresAt   int64    `json:"expires_at" doc:"Unix seconds"`
	User        userView `json:"user"`
}

type registerResponse struct {
	Success bool     `json:"success"`
	User    userView `json:"user"`
}

type registerOutput struct {
	Body registerResponse
}

type loginResponse struct {
	Success bool        `json:"success"`
	Session sessionView `json:"session"`
}

type loginOutput struct {
	SetCookie string `header:"Set-Cookie"`
	Body      loginResponse
}

type logoutOutput struct {
	SetCookie string `header:"Set-Cookie"`
	Body      response.OK
}
