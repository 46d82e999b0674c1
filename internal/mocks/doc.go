// Package mocks provides shared test doubles for the store, auth and audit
// interfaces.
//
// Two styles are offered for the user store: MockUserStore is an in-memory
// fake with optional function overrides, and TestifyMockUserStore records
// expectations with testify/mock.
//
//	users := mocks.NewMockUserStore()
//	users.FindByEmailFn = func(ctx context.Context, email string) (domain.User, error) {
//	    return domain.User{}, errors.New("boom")
//	}
package mocks
