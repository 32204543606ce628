package leave

type AttachmentInput struct {
	Name string `json:"name" binding:"required,max=255"`
	URL  string `json:"url" binding:"required,url"`
}

type CreateLeaveRequest struct {
	Type        string            `json:"type" binding:"required,oneof=annual sick personal maternity paternity bereavement unpaid"`
	StartDate   string            `json:"start_date" binding:"required"`
	EndDate     string            `json:"end_date" binding:"required"`
	Reason      string            `json:"reason" binding:"required,max=500"`
	Attachments []AttachmentInput `json:"attachments" binding:"omitempty,dive"`
}

type UpdateLeaveStatusRequest struct {
	Status          string  `json:"status" binding:"required,oneof=approved rejected"`
	RejectionReason *string `json:"rejection_reason" binding:"omitempty,max=500"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required,max=1000"`
}

type AttachmentResponse struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploaded_at"`
}

type CommentResponse struct {
	EmployeeID string `json:"employee_id"`
	Text       string `json:"text"`
	CreatedAt  string `json:"created_at"`
}

type LeaveResponse struct {
	ID              string               `json:"id"`
	EmployeeID      string               `json:"employee_id"`
	Type            string               `json:"type"`
	StartDate       string               `json:"start_date"`
	EndDate         string               `json:"end_date"`
	Duration        int                  `json:"duration"`
	Reason          string               `json:"reason"`
	Status          string               `json:"status"`
	ApprovedBy      *string              `json:"approved_by,omitempty"`
	ApprovedAt      *string              `json:"approved_at,omitempty"`
	RejectionReason *string              `json:"rejection_reason,omitempty"`
	Attachments     []AttachmentResponse `json:"attachments,omitempty"`
	Comments        []CommentResponse    `json:"comments,omitempty"`
	CreatedAt       string               `json:"created_at"`
}

// Statistics sums approved leave days per type for one employee-year.
type Statistics struct {
	Annual      int `json:"annual"`
	Sick        int `json:"sick"`
	Personal    int `json:"personal"`
	Maternity   int `json:"maternity"`
	Paternity   int `json:"paternity"`
	Bereavement int `json:"bereavement"`
	Unpaid      int `json:"unpaid"`
	Total       int `json:"total"`
}
