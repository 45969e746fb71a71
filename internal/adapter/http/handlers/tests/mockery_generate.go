package tests

// The hand-written mocks in mocks_test.go follow the mockery layout; to
// regenerate them with mockery instead:
//
//   go generate ./internal/adapter/http/handlers/tests
//
//go:generate mockery --name TaskService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename task_service_mock.go --with-expecter
//go:generate mockery --name OrderingService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename ordering_service_mock.go --with-expecter
//go:generate mockery --name NotificationService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename notification_service_mock.go --with-expecter
