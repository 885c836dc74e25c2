package gateway

import (
	"context"
	"net/http"
	"net/url"

	"paradisian/pkg/model"
)

func (g *Gateway) AllUsers(ctx context.Context, sess SessionContext) ([]model.User, error) {
	env, err := g.do(ctx, sess, request{
		method: http.MethodGet,
		path:   "/users/all",
		authed: true,
	})
	if err != nil {
		return nil, err
	}
	return env.UserList, nil
}

// Profile returns the account belonging to the bearer token.
func (g *Gateway) Profile(ctx context.Context, sess SessionContext) (*model.User, error) {
	env, err := g.do(ctx, sess, request{
		method: http.MethodGet,
		path:   "/users/get-logged-in-profile-info",
		authed: true,
	})
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

func (g *Gateway) UserByID(ctx context.Context, sess SessionContext, userID string) (*model.User, error) {
	env, err := g.do(ctx, sess, request{
		method: http.MethodGet,
		path:   "/users/get-by-id/" + url.PathEscape(userID),
		authed: true,
	})
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// UserBookings returns the user's booking history, bookings attached to the
// user record.
func (g *Gateway) UserBookings(ctx context.Context, sess SessionContext, userID string) (*model.User, error) {
	env, err := g.do(ctx, sess, request{
		method: http.MethodGet,
		path:   "/users/get-user-bookings/" + url.PathEscape(userID),
		authed: true,
	})
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

func (g *Gateway) DeleteUser(ctx context.Context, sess SessionContext, userID string) error {
	_, err := g.do(ctx, sess, request{
		method: http.MethodDelete,
		path:   "/users/delete/" + url.PathEscape(userID),
		authed: true,
	})
	return err
}

// UpdateProfile applies a partial profile update and returns the updated
// account record.
func (g *Gateway) UpdateProfile(ctx context.Context, sess SessionContext, patch model.User) (*model.User, error) {
	body, err := marshalBody(patch)
	if err != nil {
		return nil, err
	}
	env, err := g.do(ctx, sess, request{
		method:      http.MethodPut,
		path:        "/users/update-profile",
		body:        body,
		contentType: "application/json",
		authed:      true,
	})
	if err != nil {
		return nil, err
	}
	return env.User, nil
}
