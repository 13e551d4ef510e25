// AngelaMos | 2026
// dto.go

package newsletter

type SubscribeRequest struct {
	Email  string   `json:"email"  validate:"required,email,max=254"`
	Source string   `json:"source" validate:"omitempty,oneof=website admin import"`
	Tags   []string `json:"tags"   validate:"omitempty,max=20,dive,max=50"`
}

type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=active unsubscribed bounced"`
}

type UpdateRequest struct {
	Status *Status   `json:"status" validate:"omitempty,oneof=active unsubscribed bounced"`
	Tags   *[]string `json:"tags"   validate:"omitempty,max=20,dive,max=50"`
}

type BulkUpdateRequest struct {
	IDs    []string `json:"ids"    validate:"required,min=1,max=500"`
	Status Status   `json:"status" validate:"required,oneof=active unsubscribed bounced"`
}

type BulkUpdateResponse struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

type StatsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

type ListParams struct {
	Status string
	Source string
	Search string
}
