package domain

import "time"

// SampleSeed returns demo projects and tasks with dates relative to now.
// Events are derived from the tasks that already carry a schedule.
func SampleSeed(now time.Time) Seed {
	day := func(offset, hour int) time.Time {
		y, m, d := now.Date()
		return time.Date(y, m, d+offset, hour, 0, 0, 0, now.Location())
	}
	ptr := func(t time.Time) *time.Time { return &t }

	projects := []Project{
		{ID: "test-project", Title: "Test Project", Description: "Scratch project for trying things out", Priority: PriorityHigh, Color: "#9c27b0", CreatedAt: now, UpdatedAt: now},
		{ID: "project-1", Title: "Website Redesign", Description: "Redesign the company website with modern UI/UX principles", Priority: PriorityHigh, Color: "#3f51b5", CreatedAt: day(-10, 9), UpdatedAt: day(-10, 9)},
		{ID: "project-2", Title: "Mobile App Development", Description: "Develop a new mobile app for iOS and Android platforms", Priority: PriorityUrgent, Color: "#f44336", CreatedAt: day(-7, 9), UpdatedAt: day(-7, 9)},
		{ID: "project-3", Title: "Marketing Campaign", Description: "Plan and execute Q3 marketing campaign", Priority: PriorityMedium, Color: "#4caf50", CreatedAt: day(-5, 9), UpdatedAt: day(-5, 9)},
		{ID: "project-4", Title: "Research Project", Description: "Conduct market research for new product line", Priority: PriorityLow, Color: "#ff9800", CreatedAt: day(-3, 9), UpdatedAt: day(-3, 9)},
	}

	type row struct {
		id, title, project string
		priority           Priority
		hours              float64
		completed, auto    bool
		due                int
		start, end         *time.Time
		created            int
	}
	rows := []row{
		{"task-1", "Create wireframes", "project-1", PriorityHigh, 4, true, true, 2, ptr(day(-5, 10)), ptr(day(-5, 14)), -10},
		{"task-2", "Design mockups", "project-1", PriorityHigh, 6, false, true, 5, ptr(day(1, 9)), ptr(day(1, 15)), -10},
		{"task-3", "Frontend implementation", "project-1", PriorityMedium, 8, false, true, 10, nil, nil, -10},
		{"task-4", "App architecture design", "project-2", PriorityUrgent, 3, true, true, -1, ptr(day(-3, 13)), ptr(day(-3, 16)), -7},
		{"task-5", "UI/UX design", "project-2", PriorityHigh, 5, false, true, 3, ptr(day(0, 10)), ptr(day(0, 15)), -7},
		{"task-6", "iOS development", "project-2", PriorityMedium, 10, false, false, 15, nil, nil, -7},
		{"task-7", "Android development", "project-2", PriorityMedium, 10, false, false, 15, nil, nil, -7},
		{"task-8", "Campaign strategy", "project-3", PriorityHigh, 4, true, true, -2, ptr(day(-4, 9)), ptr(day(-4, 13)), -5},
		{"task-9", "Content creation", "project-3", PriorityMedium, 6, false, true, 4, nil, nil, -5},
		{"task-10", "Campaign launch", "project-3", PriorityUrgent, 2, false, true, 7, nil, nil, -5},
		{"task-11", "Survey design", "project-4", PriorityMedium, 3, true, true, -1, ptr(day(-2, 14)), ptr(day(-2, 17)), -3},
		{"task-12", "Data collection", "project-4", PriorityMedium, 5, false, true, 6, ptr(day(2, 9)), ptr(day(2, 14)), -3},
		{"task-13", "Data analysis", "project-4", PriorityHigh, 4, false, true, 10, nil, nil, -3},
		{"task-14", "Final report", "project-4", PriorityHigh, 6, false, false, 14, nil, nil, -3},
	}

	colors := make(map[string]string, len(projects))
	for _, p := range projects {
		colors[p.ID] = p.Color
	}

	seed := Seed{Projects: projects}
	for _, r := range rows {
		created := day(r.created, 9)
		t := Task{
			ID:             r.id,
			Title:          r.title,
			Priority:       r.priority,
			ProjectID:      r.project,
			EstimatedHours: r.hours,
			Completed:      r.completed,
			AutoSchedule:   r.auto,
			DueDate:        ptr(day(r.due, 9)),
			ScheduledStart: r.start,
			ScheduledEnd:   r.end,
			CreatedAt:      created,
			UpdatedAt:      created,
		}
		seed.Tasks = append(seed.Tasks, t)
		if t.IsScheduled() {
			seed.Events = append(seed.Events, CalendarEvent{
				ID:        "event-" + t.ID,
				Title:     t.Title,
				Start:     *t.ScheduledStart,
				End:       *t.ScheduledEnd,
				Color:     colors[t.ProjectID],
				TaskID:    t.ID,
				ProjectID: t.ProjectID,
			})
		}
	}
	return seed
}
