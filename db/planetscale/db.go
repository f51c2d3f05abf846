package planetscale

import (
	"context"
	"database/sql"
	"fmt"

	db2 "github.com/navbryce/next-dorm-trust/db"
	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"
)

type PlanetScaleDB struct {
	*MemberDB
	*CommunityDB
	*ContentDB
	*ReportDB
	*QueueDB
	*ActionDB
	*EscalationDB
	*AppealDB
	*BanDB
	*ModeratorDB
	*AdminDB
	*AuditDB
	sess  db.Session
	sqlDB *sql.DB
}

type Config struct {
	User     string
	Password string
	Host     string
	Name     string
}

func GetDatabase(cfg *Config) (db2.Database, error) {
	sqlDB, err := sql.Open("mysql",
		fmt.Sprintf("%s:%s@tcp(%s)/%s?tls=true&parseTime=true",
			cfg.User, cfg.Password, cfg.Host, cfg.Name))
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxIdleTime(0)

	sess, err := mysql.New(sqlDB)
	if err != nil {
		return nil, err
	}

	return newWithSession(sess, sqlDB), nil
}

func newWithSession(sess db.Session, sqlDB *sql.DB) *PlanetScaleDB {
	return &PlanetScaleDB{
		MemberDB:     getMemberDB(sess),
		CommunityDB:  getCommunityDB(sess),
		ContentDB:    getContentDB(sess),
		ReportDB:     getReportDB(sess),
		QueueDB:      getQueueDB(sess),
		ActionDB:     getActionDB(sess),
		EscalationDB: getEscalationDB(sess),
		AppealDB:     getAppealDB(sess),
		BanDB:        getBanDB(sess),
		ModeratorDB:  getModeratorDB(sess),
		AdminDB:      getAdminDB(sess),
		AuditDB:      getAuditDB(sess),
		sess:         sess,
		sqlDB:        sqlDB,
	}
}

// Tx binds a Database to a single transaction so precondition reads, writes,
// and the audit append commit or roll back together.
func (psdb *PlanetScaleDB) Tx(ctx context.Context, fn func(tx db2.Database) error) error {
	return psdb.sess.TxContext(ctx, func(sess db.Session) error {
		return fn(newWithSession(sess, psdb.sqlDB))
	}, &sql.TxOptions{})
}

func (psdb *PlanetScaleDB) GetSQLDB() *sql.DB {
	return psdb.sqlDB
}

func (psdb *PlanetScaleDB) Close() error {
	return psdb.sess.Close()
}
