package dto

// AddUserReq represents the request body for the admin add-user endpoint.
type AddUserReq struct {
	Username string `json:"username" binding:"required,min=1,max=64"`
	Password string `json:"password" binding:"required,min=8"`
	IsAdmin  bool   `json:"is_admin"`
}
