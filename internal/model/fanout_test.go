package model

import "testing"

func TestFanoutResultFinalize(t *testing.T) {
	tests := []struct {
		name     string
		statuses []OutcomeStatus
		want     BroadcastStatus
	}{
		{
			name:     "no outcomes",
			statuses: nil,
			want:     BroadcastFailed,
		},
		{
			name:     "all delivered",
			statuses: []OutcomeStatus{OutcomeDelivered, OutcomeDelivered},
			want:     BroadcastSucceeded,
		},
		{
			name:     "mixed",
			statuses: []OutcomeStatus{OutcomeDelivered, OutcomeFailed},
			want:     BroadcastPartialFailure,
		},
		{
			name:     "all failed",
			statuses: []OutcomeStatus{OutcomeFailed, OutcomeFailed, OutcomeFailed},
			want:     BroadcastFailed,
		},
		{
			name:     "single delivered",
			statuses: []OutcomeStatus{OutcomeDelivered},
			want:     BroadcastSucceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &FanoutResult{BroadcastID: "test"}
			for _, status := range tt.statuses {
				result.Record(RecipientOutcome{
					Channel: NotificationChannelEmail,
					Status:  status,
				})
			}

			result.Finalize()

			if result.Overall != tt.want {
				t.Errorf("Overall = %q, want %q", result.Overall, tt.want)
			}
		})
	}
}
