package clock

import (
	"testing"

	"github.com/pthm-cable/deadroad/events"
)

func TestTickAccumulates(t *testing.T) {
	c := New(events.NewBus(), 1110)
	c.SetTargetTime(100)

	for i := 0; i < 10; i++ {
		c.Tick(0.5)
	}

	if c.Elapsed() != 5 {
		t.Errorf("Elapsed = %v, want 5", c.Elapsed())
	}
	if c.Passed() {
		t.Error("Passed = true before target")
	}
}

func TestTargetTimePassedFiresEveryTick(t *testing.T) {
	bus := events.NewBus()
	c := New(bus, 1110)
	c.SetTargetTime(1)

	fired := 0
	var payload any
	bus.Subscribe(events.TargetTimePassed, func(ev events.Event) {
		fired++
		payload = ev.Payload
	})

	c.Tick(0.5) // 0.5
	c.Tick(0.5) // 1.0, not beyond target
	if fired != 0 {
		t.Fatalf("fired %d times before crossing, want 0", fired)
	}

	c.Tick(0.5) // 1.5
	c.Tick(0.5) // 2.0
	c.Tick(0.5) // 2.5
	if fired != 3 {
		t.Errorf("fired %d times after crossing, want 3", fired)
	}
	if payload != 1.0 {
		t.Errorf("payload = %v, want target 1.0", payload)
	}
	if !c.Passed() {
		t.Error("Passed = false after crossing")
	}
}

func TestSetTimeResets(t *testing.T) {
	c := New(events.NewBus(), 1110)
	c.SetTargetTime(10)
	c.Tick(20)
	c.SetTime(0)

	if c.Elapsed() != 0 {
		t.Errorf("Elapsed = %v, want 0", c.Elapsed())
	}
	if c.Passed() {
		t.Error("Passed should clear after reset")
	}
}

func TestGameTime(t *testing.T) {
	const day = 1110.0
	hour := day / 24

	tests := []struct {
		name    string
		elapsed float64
		want    TimeOfDay
	}{
		{"start is 7 AM", 0, TimeOfDay{Days: 0, Hours: 7}},
		{"one hour later", hour, TimeOfDay{Days: 0, Hours: 8}},
		{"half hour", hour / 2, TimeOfDay{Days: 0, Hours: 7, Minutes: 30}},
		{"wraps past midnight", 17 * hour, TimeOfDay{Days: 1, Hours: 0}},
		{"second day afternoon", day + 6*hour, TimeOfDay{Days: 1, Hours: 13}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(events.NewBus(), day)
			c.SetTime(tc.elapsed)
			got := c.GameTime()
			if got.Days != tc.want.Days || got.Hours != tc.want.Hours || got.Minutes != tc.want.Minutes {
				t.Errorf("GameTime() = %+v, want days=%d hours=%d minutes=%d",
					got, tc.want.Days, tc.want.Hours, tc.want.Minutes)
			}
		})
	}
}

func TestRemaining(t *testing.T) {
	const day = 1110.0
	c := New(events.NewBus(), day)
	c.SetTargetTime(3 * day)
	c.SetTime(day)

	got := c.Remaining()
	if got.Days != 2 || got.Hours != 0 || got.Minutes != 0 {
		t.Errorf("Remaining() = %+v, want 2 days", got)
	}
	if got.Time != 2*day {
		t.Errorf("Remaining().Time = %v, want %v", got.Time, 2*day)
	}
}

func TestTimeOfDayString(t *testing.T) {
	got := TimeOfDay{Days: 1, Hours: 7, Minutes: 5}.String()
	if got != "Day 1 07:05" {
		t.Errorf("String() = %q, want %q", got, "Day 1 07:05")
	}
}
