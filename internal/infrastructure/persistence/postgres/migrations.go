package postgres

// GetMigrations returns all embedded migrations in order.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_users_and_students",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_lessons",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
		{
			Version: 3,
			Name:    "create_subscriptions",
			UpSQL:   migration003Up,
			DownSQL: migration003Down,
		},
		{
			Version: 4,
			Name:    "create_finance",
			UpSQL:   migration004Up,
			DownSQL: migration004Down,
		},
	}
}

const migration001Up = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS students (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	remaining_lessons INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_students_user ON students(user_id);
`

const migration001Down = `
DROP TABLE IF EXISTS students;
DROP TABLE IF EXISTS users;
`

const migration002Up = `
CREATE TABLE IF NOT EXISTS lessons (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	student_id BIGINT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
	date TIMESTAMP WITH TIME ZONE NOT NULL,
	duration_minutes INTEGER NOT NULL DEFAULT 60,
	is_completed BOOLEAN NOT NULL DEFAULT FALSE,
	is_cancelled BOOLEAN NOT NULL DEFAULT FALSE,
	notes TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_lessons_user_date ON lessons(user_id, date);
CREATE INDEX IF NOT EXISTS idx_lessons_student ON lessons(student_id);
`

const migration002Down = `
DROP TABLE IF EXISTS lessons;
`

const migration003Up = `
CREATE TABLE IF NOT EXISTS subscriptions (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	student_id BIGINT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
	start_date TIMESTAMP WITH TIME ZONE NOT NULL,
	end_date TIMESTAMP WITH TIME ZONE NOT NULL,
	lessons_count INTEGER NOT NULL DEFAULT 0,
	price BIGINT NOT NULL DEFAULT 0,
	notes TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_subscriptions_user ON subscriptions(user_id);
CREATE INDEX IF NOT EXISTS idx_subscriptions_student ON subscriptions(student_id);
`

const migration003Down = `
DROP TABLE IF EXISTS subscriptions;
`

const migration004Up = `
CREATE TABLE IF NOT EXISTS expenses (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	date TIMESTAMP WITH TIME ZONE NOT NULL,
	amount BIGINT NOT NULL,
	category TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS incomes (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	date TIMESTAMP WITH TIME ZONE NOT NULL,
	amount BIGINT NOT NULL,
	category TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS rent_settings (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	amount BIGINT NOT NULL DEFAULT 0,
	payment_day INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses(user_id, date);
CREATE INDEX IF NOT EXISTS idx_incomes_user_date ON incomes(user_id, date);
`

const migration004Down = `
DROP TABLE IF EXISTS rent_settings;
DROP TABLE IF EXISTS incomes;
DROP TABLE IF EXISTS expenses;
`
