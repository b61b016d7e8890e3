package directory

// ObjectType is the kind of a directory object returned in an expanded relation.
type ObjectType string

// Directory object types.
const (
	ObjectTypeUser             ObjectType = "user"
	ObjectTypeGroup            ObjectType = "group"
	ObjectTypeServicePrincipal ObjectType = "servicePrincipal"
	ObjectTypeApplication      ObjectType = "application"
	ObjectTypeDevice           ObjectType = "device"
	ObjectTypeOther            ObjectType = "other"
)

// User is a directory user. Mail may be empty.
type User struct {
	ID            string `json:"id" yaml:"id"`
	PrincipalName string `json:"userPrincipalName" yaml:"userPrincipalName"`
	DisplayName   string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Mail          string `json:"mail,omitempty" yaml:"mail,omitempty"`
}

// HasMail reports whether the user carries an email address.
func (u User) HasMail() bool {
	return u.Mail != ""
}

// Object is any directory object found in a members or owners relation.
type Object struct {
	ID            string
	Type          ObjectType
	DisplayName   string
	PrincipalName string
	Mail          string
}

// User returns the object as a User, or false when the object is not a user.
func (o Object) User() (User, bool) {
	if o.Type != ObjectTypeUser {
		return User{}, false
	}
	return User{
		ID:            o.ID,
		PrincipalName: o.PrincipalName,
		DisplayName:   o.DisplayName,
		Mail:          o.Mail,
	}, true
}

// Users filters objects down to users, dropping groups, service principals
// and anything else a relation may hold.
func Users(objects []Object) []User {
	users := make([]User, 0, len(objects))
	for _, o := range objects {
		if u, ok := o.User(); ok {
			users = append(users, u)
		}
	}
	return users
}

// Target is a group, application or service principal together with the
// relation that was expanded when it was looked up.
type Target struct {
	ID                   string
	DisplayName          string
	Resource             Resource
	ServicePrincipalType string // service principals only
	Objects              []Object
}

// Users returns the users held by the expanded relation.
func (t Target) Users() []User {
	return Users(t.Objects)
}
