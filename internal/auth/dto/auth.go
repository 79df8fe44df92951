package dto

type RegisterParams struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshTokenParams struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthWithTokenParams struct {
	AccessToken string `json:"access_token"`
}

type UploadProfilePictureParams struct {
	ImageURL string `json:"image_url"`
}
