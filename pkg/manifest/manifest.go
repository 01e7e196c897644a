package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/e2e-framework/klient/decoder"
	"sigs.k8s.io/yaml"
)

const (
	// KindDevWorkspace is the kind of the workspace resource
	KindDevWorkspace = "DevWorkspace"
	// KindDevWorkspaceTemplate is the kind of the editor / component template resource
	KindDevWorkspaceTemplate = "DevWorkspaceTemplate"

	// DevfileAnnotation holds the devfile the DevWorkspace was created from
	DevfileAnnotation = "che.eclipse.org/devfile"

	minimumSchemaVersion = ">= 2.0.0"
)

// Resource is a single document of a Manifest
type Resource struct {
	APIVersion string
	Kind       string
	Name       string
	Object     map[string]any
}

// Manifest is a parsed multi-document manifest.
// Raw is the text exactly as it was provided and is what gets submitted to the cluster.
type Manifest struct {
	Raw       string
	Resources []Resource
}

// Parse decodes every document of the provided manifest text
func Parse(ctx context.Context, text string) (*Manifest, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("manifest is empty")
	}

	objects, err := decoder.DecodeAll(ctx, strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("failed to decode manifest - %w", err)
	}

	m := &Manifest{Raw: text}
	for _, obj := range objects {
		var content map[string]any
		if u, ok := obj.(*unstructured.Unstructured); ok {
			content = u.Object
		} else {
			content, err = runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
			if err != nil {
				return nil, fmt.Errorf("failed to convert %s - %w", obj.GetName(), err)
			}
		}

		u := unstructured.Unstructured{Object: content}
		m.Resources = append(m.Resources, Resource{
			APIVersion: u.GetAPIVersion(),
			Kind:       u.GetKind(),
			Name:       u.GetName(),
			Object:     content,
		})
	}

	return m, nil
}

// DevWorkspace returns the first DevWorkspace resource of the manifest, or nil if there isn't one
func (m *Manifest) DevWorkspace() *Resource {
	for i := range m.Resources {
		if m.Resources[i].Kind == KindDevWorkspace {
			return &m.Resources[i]
		}
	}
	return nil
}

// MainContainer returns the name of the container commands should be run in.
//
// This is the first container component that isn't used as an init container (the target of an `apply` command),
// looking at the DevWorkspace's own template first and then at every DevWorkspaceTemplate.
func (m *Manifest) MainContainer() string {
	ordered := []Resource{}
	if dw := m.DevWorkspace(); dw != nil {
		ordered = append(ordered, *dw)
	}
	for _, r := range m.Resources {
		if r.Kind == KindDevWorkspaceTemplate {
			ordered = append(ordered, r)
		}
	}

	for _, r := range ordered {
		path := []string{"spec"}
		if r.Kind == KindDevWorkspace {
			path = append(path, "template")
		}

		initContainers := map[string]bool{}
		commands, _, _ := unstructured.NestedSlice(r.Object, append(path, "commands")...)
		for _, c := range commands {
			command, ok := c.(map[string]any)
			if !ok {
				continue
			}
			if target, found, _ := unstructured.NestedString(command, "apply", "component"); found {
				initContainers[target] = true
			}
		}

		components, _, _ := unstructured.NestedSlice(r.Object, append(path, "components")...)
		for _, c := range components {
			component, ok := c.(map[string]any)
			if !ok {
				continue
			}
			name, _, _ := unstructured.NestedString(component, "name")
			if _, isContainer := component["container"]; isContainer && !initContainers[name] {
				return name
			}
		}
	}

	return ""
}

// DevfileSchemaVersion returns the schemaVersion of the devfile annotation on the DevWorkspace.
// Returns nil if the annotation isn't set.
func (m *Manifest) DevfileSchemaVersion() (*semver.Version, error) {
	dw := m.DevWorkspace()
	if dw == nil {
		return nil, nil
	}

	annotations, _, _ := unstructured.NestedStringMap(dw.Object, "metadata", "annotations")
	devfile, ok := annotations[DevfileAnnotation]
	if !ok {
		return nil, nil
	}

	var parsed struct {
		SchemaVersion string `json:"schemaVersion"`
	}
	if err := yaml.Unmarshal([]byte(devfile), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse devfile annotation - %w", err)
	}
	if parsed.SchemaVersion == "" {
		return nil, fmt.Errorf("devfile annotation has no schemaVersion")
	}

	return semver.NewVersion(parsed.SchemaVersion)
}

// Validate checks the manifest describes exactly one named DevWorkspace with a supported devfile
func (m *Manifest) Validate() error {
	workspaces := 0
	for _, r := range m.Resources {
		if r.Name == "" {
			return fmt.Errorf("%s resource has no name", r.Kind)
		}
		if r.Kind == KindDevWorkspace {
			workspaces++
		}
	}
	if workspaces != 1 {
		return fmt.Errorf("expected exactly one %s but found %d", KindDevWorkspace, workspaces)
	}

	version, err := m.DevfileSchemaVersion()
	if err != nil {
		return err
	}
	if version != nil {
		constraint, err := semver.NewConstraint(minimumSchemaVersion)
		if err != nil {
			return err
		}
		if !constraint.Check(version) {
			return fmt.Errorf("devfile schemaVersion %s is not supported, must be %s", version, minimumSchemaVersion)
		}
	}

	return nil
}
