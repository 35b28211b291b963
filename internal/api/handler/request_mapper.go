package handler

import (
	"github.com/workdesk/request-system/internal/core/domain"
	"github.com/workdesk/request-system/internal/core/ports"
)

func toRequestResponse(v *ports.RequestView) requestResponse {
	return requestResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Status:      string(v.Status),
		CreatedBy:   toUserRefResponse(v.CreatedBy),
		AssignedTo:  toUserRefResponse(v.AssignedTo),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toRequestResponses(views []ports.RequestView) []requestResponse {
	out := make([]requestResponse, 0, len(views))
	for i := range views {
		out = append(out, toRequestResponse(&views[i]))
	}
	return out
}

func toUserRefResponse(ref domain.UserRef) userRefResponse {
	return userRefResponse{ID: ref.ID, Name: ref.Name, Email: ref.Email}
}
