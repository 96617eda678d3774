package model

import "strings"

// Instance describes the identity of one contact-center instance as captured
// in a snapshot. It is read from instance.json (or instance.var in TOML form)
// at the snapshot root.
type Instance struct {
	ID             string `json:"Id" toml:"id"`
	ARN            string `json:"Arn" toml:"arn"`
	Alias          string `json:"Alias" toml:"alias"`
	Profile        string `json:"Profile" toml:"profile"`
	FlowNamePrefix string `json:"FlowNamePrefix" toml:"flow_name_prefix"`
	LambdaPrefix   string `json:"LambdaPrefix" toml:"lambda_prefix"`
	BotPrefix      string `json:"BotPrefix" toml:"bot_prefix"`
}

// arnField extracts the nth colon-separated segment of the instance ARN.
// ARNs have the shape arn:aws:connect:<region>:<account>:instance/<id>.
func (i Instance) arnField(n int) string {
	parts := strings.SplitN(i.ARN, ":", 6)
	if n >= len(parts) {
		return ""
	}
	return parts[n]
}

// Region returns the region segment of the instance ARN.
func (i Instance) Region() string {
	return i.arnField(3)
}

// Account returns the account segment of the instance ARN.
func (i Instance) Account() string {
	return i.arnField(4)
}

// ARNScope returns the ":region:account:" segment shared by every service ARN
// in this instance's account. It is the pattern used for the global ARN
// substitution rule.
func (i Instance) ARNScope() string {
	return ":" + i.Region() + ":" + i.Account() + ":"
}
