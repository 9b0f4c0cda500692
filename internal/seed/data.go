package seed

import (
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
)

const (
	DemoLearnerEmail    = "demo@ssbcompass.com"
	DemoLearnerPassword = "password123"
	DemoAdminID         = "ADMIN123"
	DemoAdminPassword   = "SSBNEW2026"

	demoLearnerID = "00000000-0000-4000-8000-000000000001"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func demoCourses() []models.Course {
	base := day(2025, 1, 1)
	rows := []models.Course{
		{ID: "VR", Name: "Verbal Reasoning", Description: "Master series completion, coding-decoding, synonyms, and analogies", Price: 999, Duration: "30 minutes | 50 Questions", Category: "Reasoning", Instructor: "Team SSB COMPASS", Enrolled: 156, Rating: 4.8},
		{ID: "NVR", Name: "Non-Verbal Reasoning", Description: "Pattern recognition, figure series, spatial ability training", Price: 999, Duration: "30 minutes | 50 Questions", Category: "Reasoning", Instructor: "Team SSB COMPASS", Enrolled: 142, Rating: 4.7},
		{ID: "TAT", Name: "TAT Course", Description: "Complete Thematic Apperception Test training with real exam scenarios", Price: 1499, Duration: "4 minutes | 12 Pictures", Category: "Psychology", Instructor: "Ms. Vishnupriya Ahlawat", Enrolled: 98, Rating: 4.9},
		{ID: "PSYCHE", Name: "Psyche Course", Description: "Psychological test preparation with practical response training", Price: 1499, Duration: "30 seconds | 60 Situations", Category: "Psychology", Instructor: "Ms. Vishnupriya Ahlawat", Enrolled: 87, Rating: 4.8},
		{ID: "GD", Name: "Group Discussion (GD)", Description: "Master group discussion with current affairs and speaking strategies", Price: 1999, Duration: "8 minutes | 2 Rounds", Category: "Communication", Instructor: "Wing Commander (Retd.) Amit Kumar", Enrolled: 156, Rating: 4.9},
		{ID: "PIQ", Name: "PIQ (Personal Interview)", Description: "Complete interview preparation with technical and GK questions", Price: 2499, Duration: "15 minutes | Interview Prep", Category: "Interview", Instructor: "Wing Commander (Retd.) Amit Kumar", Enrolled: 124, Rating: 4.8},
		{ID: "SD", Name: "Self Description", Description: "4-paragraph essay format with parent, teacher, friend, and self perspectives", Price: 1299, Duration: "15 minutes | Essay Writing", Category: "Writing", Instructor: "Dr. Rajesh Mishra", Enrolled: 95, Rating: 4.7},
		{ID: "BUNDLE", Name: "Complete SSB Bundle", Description: "All 7 courses combined with lifetime access", Price: 7499, Duration: "Lifetime | 100+ Hours", Category: "Bundle", Instructor: "All Faculty", Enrolled: 45, Rating: 4.9},
	}
	// Stagger creation times so insertion order survives the created_at sort.
	for i := range rows {
		rows[i].CreatedAt = base.Add(time.Duration(i) * time.Second)
		rows[i].UpdatedAt = rows[i].CreatedAt
	}
	return rows
}

func demoPurchases(grace time.Duration) []models.Purchase {
	build := func(id, course string, amount int64, ref string, at time.Time) models.Purchase {
		return models.Purchase{
			ID:             id,
			LearnerID:      demoLearnerID,
			CourseID:       course,
			Amount:         amount,
			TransactionRef: ref,
			Method:         enums.PaymentMethodUPI,
			Status:         enums.PaymentStatusCompleted,
			PurchasedAt:    at,
			CanRefund:      true,
			RefundDeadline: at.Add(grace),
		}
	}
	return []models.Purchase{
		build("P001", "VR", 999, "UPI20250124001", day(2025, 1, 20)),
		build("P002", "TAT", 1499, "UPI20250122001", day(2025, 1, 22)),
	}
}

func demoCandidates() []models.Candidate {
	return []models.Candidate{
		{ID: "CAND0001", Name: "Rahul Singh", Position: "Fighter Pilot", Service: "IAF", SelectionDate: "2025-08-15", Photo: "avatar1.jpg", Testimonial: "SSB COMPASS helped me clear all stages with confidence!", Batch: "Batch 2024", Courses: []string{"VR", "TAT", "PSYCHE", "GD", "PIQ"}, AddedAt: day(2025, 1, 1)},
		{ID: "CAND0002", Name: "Priya Sharma", Position: "Service Officer", Service: "Army", SelectionDate: "2025-07-20", Photo: "avatar2.jpg", Testimonial: "Excellent training and guidance for SSB preparation!", Batch: "Batch 2024", Courses: []string{"BUNDLE"}, AddedAt: day(2025, 1, 2)},
	}
}

func demoEvents() []models.Event {
	return []models.Event{
		{ID: "EVT0001", Title: "Advance GD Workshop", Description: "Live workshop on advanced group discussion techniques", Category: "Workshop", Date: "2025-02-15", Status: enums.EventStatusScheduled, CreatedAt: day(2025, 1, 1)},
		{ID: "EVT0002", Title: "Live PIQ Mentorship", Description: "One-on-one interview preparation with faculty", Category: "Webinar", Date: "2025-02-20", Status: enums.EventStatusScheduled, CreatedAt: day(2025, 1, 2)},
	}
}
