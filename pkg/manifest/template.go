package manifest

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/eclipse-che/apitest/pkg/env"
)

// Template is the DevWorkspaceTemplate and DevWorkspace pair making up the empty workspace.
// Rendered with Default values it contains no trailing newline.
const Template = `apiVersion: workspace.devfile.io/v1alpha2
kind: DevWorkspaceTemplate
metadata:
  name: {{ .EditorName }}
spec:
  commands:
    - id: init-container-command
      apply:
        component: che-code-injector
    - id: init-che-code-command
      exec:
        component: che-code-runtime-description
        commandLine: nohup /checode/entrypoint-volume.sh > /checode/entrypoint-logs.txt
          2>&1 &
  events:
    preStart:
      - init-container-command
    postStart:
      - init-che-code-command
  components:
    - name: che-code-runtime-description
      container:
        image: {{ .Image }}
        env:
          - name: CODE_HOST
            value: 0.0.0.0
        volumeMounts:
          - name: checode
            path: /checode
        memoryLimit: 1024Mi
        memoryRequest: 256Mi
        cpuLimit: 500m
        cpuRequest: 30m
        endpoints:
          - name: che-code
            attributes:
              type: main
              cookiesAuthEnabled: true
              discoverable: false
              urlRewriteSupported: true
            targetPort: 3100
            exposure: public
            secure: false
            protocol: https
          - name: code-redirect-1
            attributes:
              discoverable: false
              urlRewriteSupported: false
            targetPort: 13131
            exposure: public
            protocol: http
          - name: code-redirect-2
            attributes:
              discoverable: false
              urlRewriteSupported: false
            targetPort: 13132
            exposure: public
            protocol: http
          - name: code-redirect-3
            attributes:
              discoverable: false
              urlRewriteSupported: false
            targetPort: 13133
            exposure: public
            protocol: http
      attributes:
        app.kubernetes.io/component: che-code-runtime
        app.kubernetes.io/part-of: che-code.eclipse.org
        controller.devfile.io/container-contribution: true
    - name: checode
      volume: {}
    - name: che-code-injector
      container:
        image: quay.io/che-incubator/che-code:latest
        command:
          - /entrypoint-init-container.sh
        volumeMounts:
          - name: checode
            path: /checode
        memoryLimit: 256Mi
        memoryRequest: 32Mi
        cpuLimit: 500m
        cpuRequest: 30m
---
apiVersion: workspace.devfile.io/v1alpha2
kind: DevWorkspace
metadata:
  name: {{ .WorkspaceName }}
  annotations:
    che.eclipse.org/devfile: |
      schemaVersion: 2.2.0
      metadata:
        name: {{ .WorkspaceName }}
spec:
  started: true
  template: {}
  contributions:
    - name: editor
      kubernetes:
        name: {{ .EditorName }}`

// Values are the parameters of the Template
type Values struct {
	// WorkspaceName is the name of the DevWorkspace
	WorkspaceName string
	// EditorName is the name of the DevWorkspaceTemplate. Defaults to `che-code-<WorkspaceName>`.
	EditorName string
	// Image is the runtime container image
	Image string
}

// Default returns the values of the stock empty workspace, taking the image from the environment
func Default() Values {
	image := os.Getenv(env.UDIImage)
	if image == "" {
		image = env.DefaultUDIImage
	}
	return Values{
		WorkspaceName: env.DefaultWorkspaceName,
		EditorName:    editorNameFor(env.DefaultWorkspaceName),
		Image:         image,
	}
}

// ForWorkspace returns the Default values with the workspace renamed
func ForWorkspace(name string) Values {
	v := Default()
	v.WorkspaceName = name
	v.EditorName = editorNameFor(name)
	return v
}

// Render produces the manifest text for the given values
func Render(values Values) (string, error) {
	if values.WorkspaceName == "" {
		values.WorkspaceName = env.DefaultWorkspaceName
	}
	if values.EditorName == "" {
		values.EditorName = editorNameFor(values.WorkspaceName)
	}
	if values.Image == "" {
		values.Image = Default().Image
	}

	tmpl, err := template.New("devworkspace").Option("missingkey=error").Parse(Template)
	if err != nil {
		return "", fmt.Errorf("failed to parse manifest template - %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		return "", fmt.Errorf("failed to render manifest - %w", err)
	}

	return buf.String(), nil
}

func editorNameFor(workspaceName string) string {
	return "che-code-" + workspaceName
}
