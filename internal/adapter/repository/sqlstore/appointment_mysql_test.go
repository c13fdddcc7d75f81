package sqlstore

import (
	"context"
	"errors"
	"testing"

	"clinic-booking/internal/domain/appointment"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// openMySQLMock builds a gorm DB speaking the MySQL dialect over sqlmock.
func openMySQLMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})
	db, err := gorm.Open(dial, &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db, mock
}

func TestMySQL_ConfirmUpdatesStatusOnly(t *testing.T) {
	db, mock := openMySQLMock(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectExec("UPDATE `appointments` SET `status`=\\? WHERE id = \\?").
		WithArgs(string(appointment.StatusConfirmed), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Confirm(context.Background(), 5); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestMySQL_DeleteReportsRowsAffected(t *testing.T) {
	db, mock := openMySQLMock(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectExec("DELETE FROM `appointments` WHERE id = \\?").
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `appointments` WHERE id = \\?").
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.Delete(context.Background(), 9)
	if err != nil || !removed {
		t.Fatalf("first delete: removed=%v err=%v", removed, err)
	}
	removed, err = repo.Delete(context.Background(), 9)
	if err != nil || removed {
		t.Fatalf("second delete: removed=%v err=%v", removed, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestMySQL_ListOrdersByDateThenTimeDescending(t *testing.T) {
	db, mock := openMySQLMock(t)
	repo := NewAppointmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "service", "date", "time", "notes", "status"}).
		AddRow(2, "B", "b@x.com", "222", "Eye", "2024-05-02", "09:00", "", "pending").
		AddRow(1, "A", "a@x.com", "111", "Dental", "2024-05-01", "10:00", "", "confirmed")
	mock.ExpectQuery("SELECT \\* FROM `appointments` ORDER BY `date` DESC,\\s*`time` DESC").
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].Status != appointment.StatusConfirmed {
		t.Fatalf("unexpected rows: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestMySQL_StatsPropagatesError(t *testing.T) {
	db, mock := openMySQLMock(t)
	repo := NewAppointmentRepository(db)

	boom := errors.New("server has gone away")
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `appointments`").WillReturnError(boom)

	if _, err := repo.Stats(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Stats err = %v, want %v", err, boom)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
