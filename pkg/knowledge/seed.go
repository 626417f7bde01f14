package knowledge

import "time"

// SeedTime is the creation time stamped on every seeded record, so that two
// freshly seeded stores compare equal.
var SeedTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// SeedRelationship references its endpoints by concept name so the dataset
// can be loaded into stores that assign their own ids.
type SeedRelationship struct {
	Source   string
	Target   string
	Type     RelationshipType
	Strength int
}

// Dataset is a set of concepts and the relationships between them.
type Dataset struct {
	Concepts      []NewConcept
	Relationships []SeedRelationship
}

// SeedDataset returns the curated starter graph. It spans several domains,
// contains multi-hop prerequisite chains (Algebra → Calculus → Differential
// Equations, Kinematics → Dynamics → Electromagnetism) and cross-domain
// related edges.
func SeedDataset() Dataset {
	return Dataset{
		Concepts: []NewConcept{
			{Name: "Algebra", Domain: "Mathematics", Difficulty: DifficultyBeginner,
				Description: "Manipulating symbols and solving equations with unknowns."},
			{Name: "Calculus", Domain: "Mathematics", Difficulty: DifficultyIntermediate,
				Description: "Limits, derivatives and integrals of single-variable functions."},
			{Name: "Linear Algebra", Domain: "Mathematics", Difficulty: DifficultyIntermediate,
				Description: "Vectors, matrices and linear transformations between vector spaces."},
			{Name: "Vector Calculus", Domain: "Mathematics", Difficulty: DifficultyAdvanced,
				Description: "Differentiation and integration of vector fields: gradient, divergence and curl."},
			{Name: "Differential Equations", Domain: "Mathematics", Difficulty: DifficultyAdvanced,
				Description: "Equations relating functions to their derivatives and methods for solving them."},
			{Name: "Probability", Domain: "Mathematics", Difficulty: DifficultyIntermediate,
				Description: "Random events, distributions and expectation."},
			{Name: "Kinematics", Domain: "Physics", Difficulty: DifficultyBeginner,
				Description: "Describing motion through position, velocity and acceleration."},
			{Name: "Dynamics", Domain: "Physics", Difficulty: DifficultyIntermediate,
				Description: "Forces and Newton's laws as the causes of motion."},
			{Name: "Electromagnetism", Domain: "Physics", Difficulty: DifficultyAdvanced,
				Description: "Electric and magnetic fields and Maxwell's equations."},
			{Name: "Programming Fundamentals", Domain: "Computer Science", Difficulty: DifficultyBeginner,
				Description: "Variables, control flow and functions."},
			{Name: "Data Structures", Domain: "Computer Science", Difficulty: DifficultyIntermediate,
				Description: "Arrays, lists, trees, hash tables and graphs."},
			{Name: "Algorithms", Domain: "Computer Science", Difficulty: DifficultyIntermediate,
				Description: "Sorting, searching and graph algorithms with complexity analysis."},
			{Name: "Machine Learning", Domain: "Computer Science", Difficulty: DifficultyAdvanced,
				Description: "Learning predictive models from data."},
			{Name: "Atomic Structure", Domain: "Chemistry", Difficulty: DifficultyBeginner,
				Description: "Protons, neutrons, electrons and electron configuration."},
			{Name: "Chemical Bonding", Domain: "Chemistry", Difficulty: DifficultyIntermediate,
				Description: "Ionic, covalent and metallic bonds between atoms."},
			{Name: "Cell Biology", Domain: "Biology", Difficulty: DifficultyBeginner,
				Description: "Structure and function of cells and their organelles."},
			{Name: "Genetics", Domain: "Biology", Difficulty: DifficultyIntermediate,
				Description: "Heredity, genes and the variation of traits."},
		},
		Relationships: []SeedRelationship{
			{Source: "Algebra", Target: "Calculus", Type: RelationshipPrerequisite, Strength: 9},
			{Source: "Calculus", Target: "Differential Equations", Type: RelationshipPrerequisite, Strength: 8},
			{Source: "Calculus", Target: "Vector Calculus", Type: RelationshipPrerequisite, Strength: 8},
			{Source: "Algebra", Target: "Linear Algebra", Type: RelationshipPrerequisite, Strength: 7},
			{Source: "Linear Algebra", Target: "Vector Calculus", Type: RelationshipPrerequisite, Strength: 6},
			{Source: "Kinematics", Target: "Dynamics", Type: RelationshipPrerequisite, Strength: 8},
			{Source: "Dynamics", Target: "Electromagnetism", Type: RelationshipPrerequisite, Strength: 6},
			{Source: "Vector Calculus", Target: "Electromagnetism", Type: RelationshipPrerequisite, Strength: 7},
			{Source: "Programming Fundamentals", Target: "Data Structures", Type: RelationshipPrerequisite, Strength: 9},
			{Source: "Data Structures", Target: "Algorithms", Type: RelationshipPrerequisite, Strength: 8},
			{Source: "Algorithms", Target: "Machine Learning", Type: RelationshipPrerequisite, Strength: 7},
			{Source: "Linear Algebra", Target: "Machine Learning", Type: RelationshipPrerequisite, Strength: 7},
			{Source: "Probability", Target: "Machine Learning", Type: RelationshipPrerequisite, Strength: 8},
			{Source: "Atomic Structure", Target: "Chemical Bonding", Type: RelationshipPrerequisite, Strength: 8},
			{Source: "Cell Biology", Target: "Genetics", Type: RelationshipPrerequisite, Strength: 8},
			{Source: "Kinematics", Target: "Vector Calculus", Type: RelationshipRelated, Strength: 5},
			{Source: "Calculus", Target: "Kinematics", Type: RelationshipRelated, Strength: 6},
			{Source: "Differential Equations", Target: "Dynamics", Type: RelationshipRelated, Strength: 6},
			{Source: "Probability", Target: "Genetics", Type: RelationshipRelated, Strength: 4},
			{Source: "Chemical Bonding", Target: "Cell Biology", Type: RelationshipRelated, Strength: 3},
			{Source: "Linear Algebra", Target: "Algorithms", Type: RelationshipRelated, Strength: 4},
		},
	}
}
