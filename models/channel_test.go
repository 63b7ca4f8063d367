package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateChannelRequestLowercasesName(t *testing.T) {
	req := &CreateChannelRequest{Name: "  General Chat  "}
	require.NoError(t, req.Validate())
	assert.Equal(t, "general chat", req.Name)
}

func TestCreateChannelRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateChannelRequest
		wantErr bool
	}{
		{"valid", CreateChannelRequest{Name: "duyurular"}, false},
		{"valid with topic", CreateChannelRequest{Name: "genel", Topic: "her şey serbest"}, false},
		{"unicode letters ok", CreateChannelRequest{Name: "tanışma-köşesi"}, false},
		{"empty name", CreateChannelRequest{Name: "   "}, true},
		{"invalid characters", CreateChannelRequest{Name: "genel#1"}, true},
		{"topic too long", CreateChannelRequest{Name: "genel", Topic: string(make([]byte, 101))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateChannelRequestLowercasesName(t *testing.T) {
	name := "ANNOUNCEMENTS"
	req := &UpdateChannelRequest{Name: &name}
	require.NoError(t, req.Validate())
	assert.Equal(t, "announcements", *req.Name)
}

func TestUpdateChannelRequestNilFieldsSkipValidation(t *testing.T) {
	req := &UpdateChannelRequest{}
	assert.NoError(t, req.Validate())
}
