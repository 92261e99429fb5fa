package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"10 days future", now.Add(10 * 24 * time.Hour), "In 10d"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelativeDateFrom(tt.input, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHumanDate(t *testing.T) {
	past := time.Date(2022, 9, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Sep 30, 2022", HumanDate(past))

	assert.Equal(t, "Today", HumanDate(time.Now()))
	assert.Equal(t, "Yesterday", HumanDate(time.Now().AddDate(0, 0, -1)))
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Now()

	assert.Equal(t, "Just now", HumanTimestamp(now))
	assert.Equal(t, "5m ago", HumanTimestamp(now.Add(-5*time.Minute)))
	assert.Equal(t, "2h ago", HumanTimestamp(now.Add(-2*time.Hour)))

	// More than 24h falls back to HumanDate
	assert.NotEmpty(t, HumanTimestamp(now.Add(-48*time.Hour)))
}

func TestStatusPill(t *testing.T) {
	tests := []struct {
		status   domain.ProjectStatus
		contains string
	}{
		{domain.ProjectActive, "Active"},
		{domain.ProjectOnHold, "On Hold"},
		{domain.ProjectCompleted, "Completed"},
		{domain.ProjectArchived, "Archived"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got := StatusPill(tt.status)
			assert.Contains(t, got, tt.contains)
		})
	}
}

func TestItemStatusPill(t *testing.T) {
	tests := []struct {
		status   domain.AggregatedStatus
		contains string
	}{
		{domain.AggNotStarted, "Not Started"},
		{domain.AggInProgress, "In Progress"},
		{domain.AggDelayed, "Delayed"},
		{domain.AggCompleted, "Completed"},
		{domain.AggCancelled, "Cancelled"},
		{domain.AggMixed, "Mixed"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got := ItemStatusPill(tt.status)
			assert.Contains(t, got, tt.contains)
		})
	}
}

func TestConfidencePill(t *testing.T) {
	assert.Contains(t, ConfidencePill(domain.ConfidenceHigh), "High")
	assert.Contains(t, ConfidencePill(domain.ConfidenceMedium), "Medium")
	assert.Contains(t, ConfidencePill(domain.ConfidenceLow), "Low")
}

func TestHealthIndicator(t *testing.T) {
	assert.Contains(t, HealthIndicator(domain.HealthHealthy), "HEALTHY")
	assert.Contains(t, HealthIndicator(domain.HealthWarning), "WARNING")
	assert.Contains(t, HealthIndicator(domain.HealthCritical), "CRITICAL")
}

func TestTrendIndicator(t *testing.T) {
	assert.Contains(t, TrendIndicator(domain.TrendImproving), "IMPROVING")
	assert.Contains(t, TrendIndicator(domain.TrendStable), "STABLE")
	assert.Contains(t, TrendIndicator(domain.TrendDeteriorating), "DETERIORATING")
}

func TestDepartmentBadge(t *testing.T) {
	assert.Contains(t, DepartmentBadge("infrastructure"), "Infrastructure")
	assert.Contains(t, DepartmentBadge("utilities"), "Utilities")
	assert.Contains(t, DepartmentBadge(""), "--")
}

func TestTruncID(t *testing.T) {
	id := "a1b2c3d4-e5f6-7890-abcd-ef1234567890"
	got := TruncID(id)
	assert.Contains(t, got, "a1b2c3d4")
	assert.NotContains(t, got, "e5f6")

	// Short IDs should be returned as-is (dimmed)
	assert.Contains(t, TruncID("short"), "short")
}

func TestMoney(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0"},
		{-0.2, "0"},
		{950, "950"},
		{1250.4, "1,250"},
		{1250.6, "1,251"},
		{45000, "45,000"},
		{1200000, "1,200,000"},
		{-3400, "-3,400"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(tt.input))
		})
	}
}

func TestSignedMoney(t *testing.T) {
	assert.Equal(t, "+750", SignedMoney(750))
	assert.Equal(t, "-3,400", SignedMoney(-3400))
	assert.Equal(t, "0", SignedMoney(0))
	assert.Equal(t, "0", SignedMoney(0.3))
}

func TestVarianceBadge(t *testing.T) {
	assert.Contains(t, VarianceBadge(750), "+750")
	assert.Contains(t, VarianceBadge(-3400), "-3,400")
	assert.Contains(t, VarianceBadge(0), "0")
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "42.5%", Percent(42.5))
	assert.Equal(t, "0.0%", Percent(0))
	assert.Equal(t, "112.0%", Percent(112))
}

func TestRatio(t *testing.T) {
	assert.Contains(t, Ratio(1.25), "1.25")
	assert.Contains(t, Ratio(0.95), "0.95")
	assert.Contains(t, Ratio(0.52), "0.52")
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("TEST", "content here")
	assert.Contains(t, result, "TEST")
	assert.Contains(t, result, "content here")
	// Should contain rounded border characters
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestRenderBoxWithoutTitle(t *testing.T) {
	result := RenderBox("", "just content")
	assert.Contains(t, result, "just content")
	assert.Contains(t, result, "╭")
}
