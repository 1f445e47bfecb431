package main

import "testing"

func TestAgentRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     agentRequest
		wantErr bool
	}{
		{"valid", agentRequest{Name: "Aisyah Rahman", Email: "aisyah@agency.my"}, false},
		{"valid with role", agentRequest{Name: "Ops", Email: "ops@agency.my", Role: "admin"}, false},
		{"name too short", agentRequest{Name: "A", Email: "a@b.my"}, true},
		{"missing at sign", agentRequest{Name: "Aisyah", Email: "aisyah.agency.my"}, true},
		{"at sign first", agentRequest{Name: "Aisyah", Email: "@agency.my"}, true},
		{"at sign last", agentRequest{Name: "Aisyah", Email: "aisyah@"}, true},
		{"unknown role", agentRequest{Name: "Aisyah", Email: "a@b.my", Role: "owner"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.req.validate()
			if (msg != "") != tt.wantErr {
				t.Errorf("validate() = %q, wantErr %v", msg, tt.wantErr)
			}
		})
	}
}

func TestPropertyRequestValidate(t *testing.T) {
	valid := propertyRequest{
		Title:        "Spacious condo in Mont Kiara",
		AgentID:      "agent-1",
		PropertyType: "condominium",
		ListingType:  "sale",
		Price:        650000,
		Bedrooms:     3,
	}
	if msg := valid.validate(); msg != "" {
		t.Fatalf("valid request rejected: %s", msg)
	}

	tests := []struct {
		name   string
		mutate func(r *propertyRequest)
	}{
		{"short title", func(r *propertyRequest) { r.Title = "Tiny" }},
		{"bad type", func(r *propertyRequest) { r.PropertyType = "castle" }},
		{"bad listing type", func(r *propertyRequest) { r.ListingType = "lease" }},
		{"negative price", func(r *propertyRequest) { r.Price = -1 }},
		{"too many bedrooms", func(r *propertyRequest) { r.Bedrooms = 21 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			if req.validate() == "" {
				t.Error("invalid request accepted")
			}
		})
	}
}
