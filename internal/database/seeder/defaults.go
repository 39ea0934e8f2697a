package seeder

import "golang.org/x/crypto/bcrypt"

const DemoPassword = "password123"

func Defaults() []Seeder {
	return []Seeder{
		DemoAccountsSeeder{Password: DemoPassword, Cost: bcrypt.DefaultCost},
		DemoJobsSeeder{},
	}
}
