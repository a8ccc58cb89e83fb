package types

type UserResponse struct {
	ID             uint    `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Bio            string  `json:"bio,omitempty"`
	DateOfBirth    *string `json:"dob,omitempty"`
	ProfilePicture string  `json:"profilePicture,omitempty"`
	Federated      bool    `json:"federated"`
}
