package dto

type CreateReviewDTO struct {
	UserId      string `json:"userId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	CompanyName string `json:"companyName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Review      string `json:"review" binding:"required"`
}

type CreateBlogDTO struct {
	Heading     string `form:"heading" binding:"required"`
	Description string `form:"description" binding:"required"`
	Link        string `form:"link" binding:"required"`
}

type CreateClientDTO struct {
	Name string `form:"name" binding:"required"`
}
