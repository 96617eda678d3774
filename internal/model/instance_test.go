package model

import "testing"

func TestInstanceARNFields(t *testing.T) {
	tests := map[string]struct {
		arn         string
		wantRegion  string
		wantAccount string
		wantScope   string
	}{
		"standard instance arn": {
			arn:         "arn:aws:connect:us-east-1:111111111111:instance/aaaa-1111",
			wantRegion:  "us-east-1",
			wantAccount: "111111111111",
			wantScope:   ":us-east-1:111111111111:",
		},
		"other partition still splits on colons": {
			arn:         "arn:aws-us-gov:connect:us-gov-west-1:222222222222:instance/bbbb-2222",
			wantRegion:  "us-gov-west-1",
			wantAccount: "222222222222",
			wantScope:   ":us-gov-west-1:222222222222:",
		},
		"empty arn yields empty fields": {
			arn:         "",
			wantRegion:  "",
			wantAccount: "",
			wantScope:   ":::",
		},
		"truncated arn yields empty trailing fields": {
			arn:         "arn:aws:connect",
			wantRegion:  "",
			wantAccount: "",
			wantScope:   ":::",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inst := Instance{ARN: tt.arn}
			if got := inst.Region(); got != tt.wantRegion {
				t.Errorf("Region() = %q, want %q", got, tt.wantRegion)
			}
			if got := inst.Account(); got != tt.wantAccount {
				t.Errorf("Account() = %q, want %q", got, tt.wantAccount)
			}
			if got := inst.ARNScope(); got != tt.wantScope {
				t.Errorf("ARNScope() = %q, want %q", got, tt.wantScope)
			}
		})
	}
}
