// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	broker TEXT NOT NULL DEFAULT '',
	currency TEXT NOT NULL DEFAULT 'USD',
	initial_balance REAL NOT NULL,
	current_balance REAL NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL,
	ticket_id TEXT NOT NULL DEFAULT '',
	currency_pair TEXT NOT NULL,
	direction TEXT NOT NULL,
	entry_time DATETIME NOT NULL,
	entry_price REAL NOT NULL,
	position_size REAL NOT NULL,
	stop_loss REAL,
	take_profit REAL,
	exit_time DATETIME,
	exit_price REAL,
	profit_loss REAL,
	status TEXT NOT NULL DEFAULT 'open',
	pips REAL,
	risk_reward_ratio REAL,
	r_multiple REAL,
	risk_amount REAL,
	notes TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS import_logs (
	id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL,
	file_name TEXT NOT NULL,
	broker_format TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	total_rows INTEGER NOT NULL DEFAULT 0,
	imported_rows INTEGER NOT NULL DEFAULT 0,
	skipped_rows INTEGER NOT NULL DEFAULT 0,
	error_rows INTEGER NOT NULL DEFAULT 0,
	error_details TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	completed_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_trades_account_status ON trades(account_id, status);
CREATE INDEX IF NOT EXISTS idx_trades_account_ticket ON trades(account_id, ticket_id);
CREATE INDEX IF NOT EXISTS idx_trades_exit_time ON trades(exit_time);
`
