package mqtt

import "testing"

func TestTopics(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "entity state",
			got:  topics.EntityState("sensor.79991234567_last_call_door_id"),
			want: "graylogic/state/intercom/sensor.79991234567_last_call_door_id",
		},
		{
			name: "incoming call",
			got:  topics.IncomingCall(),
			want: "graylogic/event/intercom/incoming_call",
		},
		{
			name: "system status",
			got:  topics.SystemStatus(),
			want: "graylogic/system/intercom/status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
