package dto

// Category and product admin forms arrive as multipart/form-data so the
// image files ride along; list-valued fields (filters, points) are
// comma-joined strings on both create and update paths.

type CreateCategoryDTO struct {
	Name          string `form:"name" binding:"required"`
	BannerHeading string `form:"bannerHeading"`
	Filters       string `form:"filters"`
}

type UpdateCategoryDTO struct {
	Name          *string `form:"name"`
	BannerHeading *string `form:"bannerHeading"`
	Filters       *string `form:"filters"`
}

type CreateProductDTO struct {
	Name          string  `form:"name" binding:"required"`
	Description   string  `form:"description" binding:"required"`
	Price         float64 `form:"price" binding:"required,gt=0"`
	Quantity      int     `form:"quantity" binding:"gte=0"`
	CategoryId    string  `form:"categoryId" binding:"required"`
	Points        string  `form:"points"`
	MaterialsCare string  `form:"materialsCare"`
	Dimensions    string  `form:"dimensions"`
}

type UpdateProductDTO struct {
	Name          *string  `form:"name"`
	Description   *string  `form:"description"`
	Price         *float64 `form:"price"`
	Quantity      *int     `form:"quantity"`
	CategoryId    *string  `form:"categoryId"`
	Points        *string  `form:"points"`
	MaterialsCare *string  `form:"materialsCare"`
	Dimensions    *string  `form:"dimensions"`
}
