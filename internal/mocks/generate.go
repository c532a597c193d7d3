package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/fixture --output domain/fixture --outpkg fixturemock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/odds --output domain/odds --outpkg oddsmock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Searcher --dir ../domain/news --output domain/news --outpkg newsmock --filename searcher_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Generator --dir ../domain/prediction --output domain/prediction --outpkg predictionmock --filename generator_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name TokenVerifier --dir ../domain/user --output domain/user --outpkg usermock --filename token_verifier_mock.go
