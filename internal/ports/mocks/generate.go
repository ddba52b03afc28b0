//go:generate mockgen -source=../bridge.go     -destination=./mock_bridge.go     -package=mocks
//go:generate mockgen -source=../subscriber.go -destination=./mock_subscriber.go -package=mocks

package mocks
