package api

import (
	"context"
	"net/http"
)

// TokenPair is the access/refresh pair returned by the login endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisteredUser is the public user record echoed back on registration.
type RegisteredUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	User    RegisteredUser `json:"user"`
	Message string         `json:"message"`
}

// Login exchanges credentials for a token pair. Invalid credentials come
// back as a *Error with the server's detail message.
func (c *Client) Login(ctx context.Context, email, password string) (TokenPair, error) {
	var pair TokenPair
	err := c.do(ctx, http.MethodPost, "/usuarios/login/", loginRequest{Email: email, Password: password}, &pair)
	return pair, err
}

// Register creates a new account. Validation failures come back as a
// *Error with field-keyed messages.
func (c *Client) Register(ctx context.Context, username, email, password string) (RegisteredUser, error) {
	var resp registerResponse
	err := c.do(ctx, http.MethodPost, "/usuarios/registro/",
		registerRequest{Username: username, Email: email, Password: password}, &resp)
	return resp.User, err
}
