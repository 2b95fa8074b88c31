package request

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}
