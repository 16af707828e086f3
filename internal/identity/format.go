package identity

import "fmt"

const DefaultScheme = "sip"

// FormatParticipant builds a participant URI that ParseParticipant understands.
func FormatParticipant(scheme, issuer, userID, domain string) string {
	if scheme == "" {
		scheme = DefaultScheme
	}
	return fmt.Sprintf("%s:.%s.%s.@%s", scheme, issuer, userID, domain)
}

// FormatChannel builds a channel URI that ParseChannel understands.
// typeCode is the raw single-letter code, see core.ChannelTypeCode.
func FormatChannel(scheme, prefix, typeCode, issuer, channelID, domain string) string {
	if scheme == "" {
		scheme = DefaultScheme
	}
	return fmt.Sprintf("%s:%s-%s-%s.%s@%s", scheme, prefix, typeCode, issuer, channelID, domain)
}
