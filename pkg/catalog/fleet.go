package catalog

// Default returns the built-in constants table of the fleet-operations
// application: the routes its pages call, with recorded consumers. This is
// the source of truth the mapping deriver reads; the endpoint registry is
// configuration layered on top of it.
func Default() *Table {
	return &Table{
		Root: "API_ENDPOINTS",
		Namespaces: []Namespace{
			{
				Name: "AUTH",
				Constants: []Constant{
					{Name: "LOGIN", Path: "/auth/login", Usage: []Usage{{Page: "Login", Note: "operator sign-in"}}},
					{Name: "FORGOT_PASSWORD", Path: "/auth/forgot-password", Usage: []Usage{{Page: "Login"}}},
					{Name: "RESET_PASSWORD", Path: "/auth/reset-password", Usage: []Usage{{Page: "Login"}}},
					{Name: "VERIFY_OTP", Path: "/auth/verify-otp", Usage: []Usage{{Page: "Login", Note: "two-step verification"}}},
					{Name: "RESEND_OTP", Path: "/auth/resend-otp", Usage: []Usage{{Page: "Login"}}},
				},
			},
			{
				Name: "DASHBOARD",
				Constants: []Constant{
					{Name: "SUMMARY", Path: "/dashboard/summary", Usage: []Usage{{Page: "Dashboard", Note: "fleet counters"}}},
					{Name: "ALERTS", Path: "/dashboard/alerts", Usage: []Usage{{Page: "Dashboard", Note: "late-bus alerts"}}},
				},
			},
			{
				Name: "DRIVERS",
				Constants: []Constant{
					{Name: "LIST", Path: "/drivers", Usage: []Usage{{Page: "Drivers", Note: "roster table"}}},
					{Name: "DETAIL", Path: "/drivers/:id", Usage: []Usage{{Page: "Drivers", Note: "profile drawer"}}},
					{Name: "CREATE", Path: "/drivers", Usage: []Usage{{Page: "Drivers", Note: "add driver modal"}}},
					{Name: "UPDATE", Path: "/drivers/:id", Usage: []Usage{{Page: "Drivers"}}},
					{Name: "UPDATE_STATUS", Path: "/drivers/:id/status", Usage: []Usage{{Page: "Drivers", Note: "activate and suspend"}}},
					{Name: "DELETE", Path: "/drivers/:id", Usage: []Usage{{Page: "Drivers"}}},
					{Name: "UPLOAD_LICENSE", Path: "/drivers/:id/license", Usage: []Usage{{Page: "Drivers", Note: "license scan upload"}}},
					{Name: "BULK_UPLOAD", Path: "/drivers/bulk-upload", Usage: []Usage{{Page: "Drivers", Note: "CSV import"}}},
				},
			},
			{
				Name: "SHIFTS",
				Constants: []Constant{
					{Name: "LIST", Path: "/shifts", Usage: []Usage{{Page: "Shifts", Note: "calendar view"}}},
					{Name: "CREATE", Path: "/shifts", Usage: []Usage{{Page: "Shifts"}}},
					{Name: "UPDATE", Path: "/shifts/:id", Usage: []Usage{{Page: "Shifts"}}},
					{Name: "DELETE", Path: "/shifts/:id", Usage: []Usage{{Page: "Shifts"}}},
					{Name: "DUPLICATE", Path: "/shifts/:id/duplicate", Usage: []Usage{{Page: "Shifts", Note: "copy last week"}}},
				},
			},
			{
				Name: "ASSIGNMENTS",
				Constants: []Constant{
					{Name: "LIST", Path: "/assignments", Usage: []Usage{{Page: "Assignments", Note: "route board"}}},
					{Name: "CREATE", Path: "/assignments", Usage: []Usage{{Page: "Assignments"}}},
					{Name: "UPDATE", Path: "/assignments/:id", Usage: []Usage{{Page: "Assignments"}}},
					{Name: "DELETE", Path: "/assignments/:id", Usage: []Usage{{Page: "Assignments"}}},
					{Name: "FLAG", Path: "/assignments/:id/flag", Usage: []Usage{{Page: "Assignments", Note: "flag for review"}}},
					{Name: "GENERATE_ROSTER", Path: "/assignments/generate", Usage: []Usage{{Page: "Assignments", Note: "auto-assign drivers"}}},
				},
			},
			{
				Name: "STUDENTS",
				Constants: []Constant{
					{Name: "LIST", Path: "/students", Usage: []Usage{{Page: "Assignments", Note: "pickup manifest"}}},
					{Name: "BULK_UPLOAD", Path: "/students/bulk-upload", Usage: []Usage{{Page: "Assignments", Note: "enrollment import"}}},
					{Name: "READ_ALL_NOTIFICATIONS", Path: "/students/notifications/read-all", Usage: []Usage{{Page: "Dashboard"}}},
				},
			},
			{
				Name: "REPORTS",
				Constants: []Constant{
					// Declared for the quarterly compliance export; no page consumes it yet.
					{Name: "EXPORT", Path: "/reports/export"},
				},
			},
		},
	}
}
