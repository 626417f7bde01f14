package sqldriver

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableUsers         = "users"
	tableConcepts      = "concepts"
	tableRelationships = "concept_relationships"
	tableProgress      = "user_progress"
)

var (
	// UsersColumns holds the columns for the "users" table.
	UsersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "username", Type: field.TypeString, Unique: true},
		{Name: "password", Type: field.TypeString},
		{Name: "email", Type: field.TypeString, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
	}
	// UsersTable holds the schema information for the "users" table.
	UsersTable = &schema.Table{
		Name:       tableUsers,
		Columns:    UsersColumns,
		PrimaryKey: []*schema.Column{UsersColumns[0]},
	}

	// ConceptsColumns holds the columns for the "concepts" table.
	ConceptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "name", Type: field.TypeString, Unique: true},
		{Name: "domain", Type: field.TypeString},
		{Name: "difficulty", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Size: 2147483647},
		{Name: "created_at", Type: field.TypeTime},
	}
	// ConceptsTable holds the schema information for the "concepts" table.
	ConceptsTable = &schema.Table{
		Name:       tableConcepts,
		Columns:    ConceptsColumns,
		PrimaryKey: []*schema.Column{ConceptsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "concept_domain", Columns: []*schema.Column{ConceptsColumns[2]}},
		},
	}

	// ConceptRelationshipsColumns holds the columns for the "concept_relationships" table.
	ConceptRelationshipsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "source_id", Type: field.TypeInt64},
		{Name: "target_id", Type: field.TypeInt64},
		{Name: "relationship_type", Type: field.TypeString},
		{Name: "strength", Type: field.TypeInt},
		{Name: "created_at", Type: field.TypeTime},
	}
	// ConceptRelationshipsTable holds the schema information for the "concept_relationships" table.
	ConceptRelationshipsTable = &schema.Table{
		Name:       tableRelationships,
		Columns:    ConceptRelationshipsColumns,
		PrimaryKey: []*schema.Column{ConceptRelationshipsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "concept_relationships_concepts_source",
				Columns:    []*schema.Column{ConceptRelationshipsColumns[1]},
				RefColumns: []*schema.Column{ConceptsColumns[0]},
				OnDelete:   schema.NoAction,
			},
			{
				Symbol:     "concept_relationships_concepts_target",
				Columns:    []*schema.Column{ConceptRelationshipsColumns[2]},
				RefColumns: []*schema.Column{ConceptsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{Name: "conceptrelationship_source_id", Columns: []*schema.Column{ConceptRelationshipsColumns[1]}},
			{Name: "conceptrelationship_target_id", Columns: []*schema.Column{ConceptRelationshipsColumns[2]}},
		},
	}

	// UserProgressColumns holds the columns for the "user_progress" table.
	UserProgressColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "user_id", Type: field.TypeInt64},
		{Name: "concept_id", Type: field.TypeInt64},
		{Name: "is_learned", Type: field.TypeBool, Default: false},
		{Name: "learned_at", Type: field.TypeTime, Nullable: true},
	}
	// UserProgressTable holds the schema information for the "user_progress" table.
	UserProgressTable = &schema.Table{
		Name:       tableProgress,
		Columns:    UserProgressColumns,
		PrimaryKey: []*schema.Column{UserProgressColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "user_progress_users_progress",
				Columns:    []*schema.Column{UserProgressColumns[1]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.NoAction,
			},
			{
				Symbol:     "user_progress_concepts_progress",
				Columns:    []*schema.Column{UserProgressColumns[2]},
				RefColumns: []*schema.Column{ConceptsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "userprogress_user_id_concept_id",
				Unique:  true,
				Columns: []*schema.Column{UserProgressColumns[1], UserProgressColumns[2]},
			},
		},
	}

	// Tables holds all the tables in the schema, in creation order.
	Tables = []*schema.Table{
		UsersTable,
		ConceptsTable,
		ConceptRelationshipsTable,
		UserProgressTable,
	}
)

func init() {
	ConceptRelationshipsTable.ForeignKeys[0].RefTable = ConceptsTable
	ConceptRelationshipsTable.ForeignKeys[1].RefTable = ConceptsTable
	UserProgressTable.ForeignKeys[0].RefTable = UsersTable
	UserProgressTable.ForeignKeys[1].RefTable = ConceptsTable
}
