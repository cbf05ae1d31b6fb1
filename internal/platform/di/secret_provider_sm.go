// internal/platform/di/secret_provider_sm.go
package di

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// accessSecret は Secret Manager から最新バージョンのシークレット値を取得します。
// name は "projects/<project>/secrets/<id>/versions/latest" の完全名、
// もしくは secret ID のみ（その場合 projectID で補完）。
func accessSecret(ctx context.Context, sm *secretmanager.Client, projectID, name string) (string, error) {
	if sm == nil {
		return "", fmt.Errorf("secret manager client is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("secret name is empty")
	}
	if !strings.HasPrefix(name, "projects/") {
		name = fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, name)
	}

	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return "", fmt.Errorf("access secret %s: %w", name, err)
	}
	return strings.TrimSpace(string(resp.GetPayload().GetData())), nil
}
