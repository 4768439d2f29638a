package dto

type CreateModuleRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=255"`
	OrderIndex int    `json:"order_index" validate:"gte=0"`
}

type UpdateModuleRequest struct {
	Title      *string `json:"title" validate:"omitempty,min=1,max=255"`
	OrderIndex *int    `json:"order_index" validate:"omitempty,gte=0"`
}

type CreateLessonRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	ContentType string  `json:"content_type" validate:"required,oneof=VIDEO TEXT"`
	VideoURL    *string `json:"video_url" validate:"omitempty,url,required_if=ContentType VIDEO"`
	TextContent *string `json:"text_content"`
	Duration    int     `json:"duration" validate:"gte=0"`
	OrderIndex  int     `json:"order_index" validate:"gte=0"`
}

type UpdateLessonRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	ContentType *string `json:"content_type" validate:"omitempty,oneof=VIDEO TEXT"`
	VideoURL    *string `json:"video_url" validate:"omitempty,url"`
	TextContent *string `json:"text_content"`
	Duration    *int    `json:"duration" validate:"omitempty,gte=0"`
	OrderIndex  *int    `json:"order_index" validate:"omitempty,gte=0"`
}
