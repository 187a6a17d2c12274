package repository

import "github.com/alexanderramin/peek/internal/db"

// SQLiteRepos bundles the repositories of one connection or transaction.
type SQLiteRepos struct {
	Projects  *SQLiteProjectRepo
	States    *SQLiteStateRepo
	Users     *SQLiteUserRepo
	WorkItems *SQLiteWorkItemRepo
}

func NewSQLiteRepos(conn db.DBTX) SQLiteRepos {
	return SQLiteRepos{
		Projects:  NewSQLiteProjectRepo(conn),
		States:    NewSQLiteStateRepo(conn),
		Users:     NewSQLiteUserRepo(conn),
		WorkItems: NewSQLiteWorkItemRepo(conn),
	}
}
