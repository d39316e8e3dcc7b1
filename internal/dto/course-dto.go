package dto

type CreateCourseRequest struct {
	Title           string `json:"title" form:"title" validate:"required"`
	Category        string `json:"category" form:"category" validate:"required"`
	Name            string `json:"name" form:"name" validate:"required"`
	WillLearn       string `json:"willLearn" form:"willLearn"`
	Description     string `json:"description" form:"description" validate:"required"`
	DescriptionLong string `json:"descriptionLong" form:"descriptionLong"`
	Requirement     string `json:"requirement" form:"requirement"`
	Price           string `json:"price" form:"price" validate:"required"`
}

type UpdateCourseRequest struct {
	CourseID        uint   `json:"courseId" form:"courseId" validate:"required"`
	Title           string `json:"title" form:"title"`
	Category        string `json:"category" form:"category"`
	Name            string `json:"name" form:"name"`
	WillLearn       string `json:"willLearn" form:"willLearn"`
	Description     string `json:"description" form:"description"`
	DescriptionLong string `json:"descriptionLong" form:"descriptionLong"`
	Requirement     string `json:"requirement" form:"requirement"`
	Price           string `json:"price" form:"price"`
}

type CourseIDRequest struct {
	CourseID uint `json:"courseId" validate:"required"`
}

type PreferencesRequest struct {
	Interest []string `json:"interest" validate:"required"`
}

type RatingRequest struct {
	CourseID uint    `json:"courseId" validate:"required"`
	Rating   float64 `json:"rating" validate:"required,min=1,max=5"`
}

type UnbookmarkRequest struct {
	CourseID uint `json:"id" validate:"required"`
}

type WatchedRequest struct {
	CourseID uint `json:"courseId" validate:"required"`
	VideoID  uint `json:"videoId" validate:"required"`
}
