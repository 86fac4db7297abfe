package response

import "stayhub/internal/usecase/readmodel"

type LoginResponse struct {
	AccessToken string                      `json:"access_token"`
	ExpiresIn   int64                       `json:"expires_in"`
	User        *readmodel.AuthorizedUserRM `json:"user"`
}
