package services

import (
	"testing"

	"socialregistry/internal/models"
	"socialregistry/internal/pagination"
	"socialregistry/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("nakato", "Nakato@Example.com", "secretpass1", models.RoleCaseWorker)
		testutil.AssertNoError(t, err)

		if user.ID == 0 {
			t.Error("expected persisted user to have an ID")
		}
		if user.Email != "nakato@example.com" {
			t.Errorf("expected lowercased email, got %q", user.Email)
		}
		if user.PasswordHash == "secretpass1" {
			t.Error("password must not be stored in plain text")
		}
		if !user.IsActive {
			t.Error("expected new user to be active")
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("taken", "first@example.com", "secretpass1", models.RoleViewer)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("taken", "second@example.com", "secretpass2", models.RoleAdmin)
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")

		var count int64
		db.Model(&models.User{}).Where("username = ?", "taken").Count(&count)
		if count != 1 {
			t.Errorf("expected 1 user, got %d", count)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "a@example.com", "secretpass1", models.RoleViewer)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAttemptLogin(t *testing.T) {
	t.Run("valid credentials record the login time", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db, models.RoleCaseWorker)

		loggedIn, err := svc.AttemptLogin(user.Username, "password123")
		testutil.AssertNoError(t, err)

		if loggedIn.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, loggedIn.ID)
		}
		if loggedIn.LastLogin == nil {
			t.Error("expected last login to be recorded")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db, models.RoleCaseWorker)

		_, err := svc.AttemptLogin(user.Username, "wrongpass")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.AttemptLogin("nobody", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("inactive user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db, models.RoleCaseWorker)

		db.Model(user).Update("is_active", false)

		_, err := svc.AttemptLogin(user.Username, "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestGetUserByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db, models.RoleAdmin)

		got, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if got.Username != user.Username {
			t.Errorf("expected username %q, got %q", user.Username, got.Username)
		}
	})

	t.Run("not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByID(999)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestGetUserByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db, models.RoleViewer)

		got, err := svc.GetUserByUsername(user.Username)
		testutil.AssertNoError(t, err)
		if got.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, got.ID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByUsername("nobody")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestListUsers(t *testing.T) {
	t.Run("applies skip and limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		for i := 0; i < 4; i++ {
			testutil.CreateTestUser(t, db, models.RoleViewer)
		}

		result, err := svc.ListUsers(pagination.PageRequest{Skip: 1, Limit: 2})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 4 {
			t.Errorf("expected 4 total, got %d", result.TotalItems)
		}
		if len(result.Data) != 2 {
			t.Errorf("expected 2 in page, got %d", len(result.Data))
		}
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("applies only provided fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db, models.RoleViewer)

		role := models.RoleCaseWorker
		inactive := false
		updated, err := svc.UpdateUser(user.ID, UserUpdateFields{Role: &role, IsActive: &inactive})
		testutil.AssertNoError(t, err)

		if updated.Role != models.RoleCaseWorker {
			t.Errorf("expected role case_worker, got %s", updated.Role)
		}
		if updated.IsActive {
			t.Error("expected user to be deactivated")
		}
		if updated.Email != user.Email {
			t.Errorf("expected untouched email, got %q", updated.Email)
		}
	})

	t.Run("not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		email := "gone@example.com"
		_, err := svc.UpdateUser(999, UserUpdateFields{Email: &email})
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
