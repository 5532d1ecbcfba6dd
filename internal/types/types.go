package types

const ContextUserKey = "user"

type UserResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	Location  string `json:"location"`
	Instagram string `json:"instagram"`
	Telegram  string `json:"telegram"`
	Avatar    string `json:"avatar"`
}
