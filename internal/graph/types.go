package graph

import (
	"strings"

	"github.com/agentstation/aadsync/pkg/directory"
)

// listResponse is the collection envelope returned by Graph.
type listResponse[T any] struct {
	Value []T `json:"value"`
}

type userResponse struct {
	ID                string `json:"id"`
	UserPrincipalName string `json:"userPrincipalName"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
}

func (u userResponse) user() directory.User {
	return directory.User{
		ID:            u.ID,
		PrincipalName: u.UserPrincipalName,
		DisplayName:   u.DisplayName,
		Mail:          u.Mail,
	}
}

// objectResponse is a directoryObject inside an expanded relation.
type objectResponse struct {
	ODataType         string `json:"@odata.type"`
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	UserPrincipalName string `json:"userPrincipalName"`
	Mail              string `json:"mail"`
}

func (o objectResponse) object() directory.Object {
	return directory.Object{
		ID:            o.ID,
		Type:          objectType(o.ODataType),
		DisplayName:   o.DisplayName,
		PrincipalName: o.UserPrincipalName,
		Mail:          o.Mail,
	}
}

// targetResponse is a group, application or service principal with one
// relation expanded.
type targetResponse struct {
	ID                   string           `json:"id"`
	DisplayName          string           `json:"displayName"`
	ServicePrincipalType string           `json:"servicePrincipalType"`
	Members              []objectResponse `json:"members"`
	Owners               []objectResponse `json:"owners"`
}

func (t targetResponse) target(resource directory.Resource, relation directory.Relation) directory.Target {
	expanded := t.Owners
	if relation == directory.RelationMembers {
		expanded = t.Members
	}
	objects := make([]directory.Object, 0, len(expanded))
	for _, o := range expanded {
		objects = append(objects, o.object())
	}
	return directory.Target{
		ID:                   t.ID,
		DisplayName:          t.DisplayName,
		Resource:             resource,
		ServicePrincipalType: t.ServicePrincipalType,
		Objects:              objects,
	}
}

// referenceRequest is the body of an add-reference call.
type referenceRequest struct {
	ODataID string `json:"@odata.id"`
}

const odataTypePrefix = "#microsoft.graph."

func objectType(odataType string) directory.ObjectType {
	switch directory.ObjectType(strings.TrimPrefix(odataType, odataTypePrefix)) {
	case directory.ObjectTypeUser:
		return directory.ObjectTypeUser
	case directory.ObjectTypeGroup:
		return directory.ObjectTypeGroup
	case directory.ObjectTypeServicePrincipal:
		return directory.ObjectTypeServicePrincipal
	case directory.ObjectTypeApplication:
		return directory.ObjectTypeApplication
	case directory.ObjectTypeDevice:
		return directory.ObjectTypeDevice
	default:
		return directory.ObjectTypeOther
	}
}
