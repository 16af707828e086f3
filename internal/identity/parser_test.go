package identity

import (
	"errors"
	"testing"

	"github.com/darmiel/voxauth/internal/core"
)

func TestParseChannel(t *testing.T) {
	tests := []struct {
		name      string
		uri       string
		want      core.ChannelIdentity
		wantValid bool
		wantType  string
	}{
		{
			name: "Simple",
			uri:  "sip:confctl-g-issuerX.channelY@domainZ",
			want: core.ChannelIdentity{
				ChannelPrefix: "confctl",
				ChannelType:   "g",
				Issuer:        "issuerX",
				ChannelID:     "channelY",
				Domain:        "domainZ",
			},
			wantValid: true,
			wantType:  core.ChannelTypeNonPositional,
		},
		{
			name: "Hyphenated Issuer And Dotted Domain",
			uri:  "sip:confctl-g-blindmelon-AppName-dev.testchannel@tla.vivox.com",
			want: core.ChannelIdentity{
				ChannelPrefix: "confctl",
				ChannelType:   "g",
				Issuer:        "blindmelon-AppName-dev",
				ChannelID:     "testchannel",
				Domain:        "tla.vivox.com",
			},
			wantValid: true,
			wantType:  core.ChannelTypeNonPositional,
		},
		{
			name: "Echo Channel",
			uri:  "sip:confctl-e-blindmelon-AppName-dev.echo1@tla.vivox.com",
			want: core.ChannelIdentity{
				ChannelPrefix: "confctl",
				ChannelType:   "e",
				Issuer:        "blindmelon-AppName-dev",
				ChannelID:     "echo1",
				Domain:        "tla.vivox.com",
			},
			wantValid: true,
			wantType:  core.ChannelTypeEcho,
		},
		{
			name: "Positional Channel",
			uri:  "sip:confctl-d-iss.room@example.org",
			want: core.ChannelIdentity{
				ChannelPrefix: "confctl",
				ChannelType:   "d",
				Issuer:        "iss",
				ChannelID:     "room",
				Domain:        "example.org",
			},
			wantValid: true,
			wantType:  core.ChannelTypePositional,
		},
		{name: "Empty", uri: ""},
		{name: "Whitespace", uri: "   "},
		{name: "No Match", uri: "not a channel"},
		{name: "Participant URI", uri: "sip:.issuerX.userY.@domainZ"},
		{name: "Multi Letter Type", uri: "sip:confctl-gg-issuer.chan@domain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseChannel(tt.uri)
			if got != tt.want {
				t.Errorf("ParseChannel() = %+v, want %+v", got, tt.want)
			}
			if got.IsValid() != tt.wantValid {
				t.Errorf("IsValid() = %v, want %v", got.IsValid(), tt.wantValid)
			}
			if !tt.wantValid {
				return
			}
			name, err := got.ChannelTypeName()
			if err != nil {
				t.Fatalf("ChannelTypeName() error = %v", err)
			}
			if name != tt.wantType {
				t.Errorf("ChannelTypeName() = %q, want %q", name, tt.wantType)
			}
		})
	}
}

func TestParseChannel_UnknownType(t *testing.T) {
	for _, code := range []string{"x", "a", "G", "E"} {
		t.Run(code, func(t *testing.T) {
			ch := ParseChannel("sip:confctl-" + code + "-issuer.chan@domain")
			if !ch.IsValid() {
				t.Fatalf("expected valid channel identity, got %+v", ch)
			}
			_, err := ch.ChannelTypeName()
			var unknown core.UnknownChannelTypeError
			if !errors.As(err, &unknown) {
				t.Fatalf("ChannelTypeName() error = %v, want UnknownChannelTypeError", err)
			}
			if unknown.Code != code {
				t.Errorf("Code = %q, want %q", unknown.Code, code)
			}
		})
	}
}

func TestParseParticipant(t *testing.T) {
	tests := []struct {
		name      string
		uri       string
		want      core.ParticipantIdentity
		wantValid bool
	}{
		{
			name:      "Simple",
			uri:       "sip:.issuerX.userY.@domainZ",
			want:      core.ParticipantIdentity{Issuer: "issuerX", UserID: "userY", Domain: "domainZ"},
			wantValid: true,
		},
		{
			name:      "Hyphenated Issuer",
			uri:       "sip:.blindmelon-AppName-dev.beef.@tla.vivox.com",
			want:      core.ParticipantIdentity{Issuer: "blindmelon-AppName-dev", UserID: "beef", Domain: "tla.vivox.com"},
			wantValid: true,
		},
		{name: "Empty", uri: ""},
		{name: "Whitespace", uri: "\t\n"},
		{name: "No Match", uri: "beef"},
		{name: "Channel URI", uri: "sip:confctl-g-issuerX.channelY@domainZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseParticipant(tt.uri)
			if got != tt.want {
				t.Errorf("ParseParticipant() = %+v, want %+v", got, tt.want)
			}
			if got.IsValid() != tt.wantValid {
				t.Errorf("IsValid() = %v, want %v", got.IsValid(), tt.wantValid)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	p := ParseParticipant(FormatParticipant("", "blindmelon-AppName-dev", "beef", "tla.vivox.com"))
	if p != (core.ParticipantIdentity{Issuer: "blindmelon-AppName-dev", UserID: "beef", Domain: "tla.vivox.com"}) {
		t.Errorf("participant round trip = %+v", p)
	}

	code, err := core.ChannelTypeCode(core.ChannelTypeNonPositional)
	if err != nil {
		t.Fatalf("ChannelTypeCode() error = %v", err)
	}
	uri := FormatChannel("sip", "confctl", code, "blindmelon-AppName-dev", "testchannel", "tla.vivox.com")
	if uri != "sip:confctl-g-blindmelon-AppName-dev.testchannel@tla.vivox.com" {
		t.Errorf("FormatChannel() = %q", uri)
	}
	ch := ParseChannel(uri)
	if ch.ChannelID != "testchannel" || ch.ChannelType != "g" || ch.Issuer != "blindmelon-AppName-dev" {
		t.Errorf("channel round trip = %+v", ch)
	}
}
