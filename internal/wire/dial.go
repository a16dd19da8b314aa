package wire

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// DialManager opens a ManagerClient against endpoint. The returned
// closer releases the underlying connection.
func DialManager(endpoint string) (ManagerClient, func() error, error) {
	cc, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	return NewManagerClient(cc), cc.Close, nil
}

// DialStorage opens a StorageClient against endpoint. The returned
// closer releases the underlying connection.
func DialStorage(endpoint string) (StorageClient, func() error, error) {
	cc, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	return NewStorageClient(cc), cc.Close, nil
}
