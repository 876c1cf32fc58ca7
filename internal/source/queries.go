package source

// WPGraphQL documents. Listing queries use cursor pagination with the same
// page size regardless of type; translation slugs ride along so slug maps
// can be built without a second round trip.

const pageSize = 100

const pagesQuery = `
query PagesByLocale($language: LanguageCodeFilterEnum!, $translationLanguage: LanguageCodeEnum!, $first: Int!, $after: String) {
  pages(first: $first, after: $after, where: { language: $language, status: PUBLISH }) {
    pageInfo {
      endCursor
      hasNextPage
    }
    nodes {
      id
      slug
      uri
      modified
      translation(language: $translationLanguage) {
        id
        slug
      }
    }
  }
}`

const postsQuery = `
query PostsByLocale($language: LanguageCodeFilterEnum!, $translationLanguage: LanguageCodeEnum!, $first: Int!, $after: String) {
  posts(first: $first, after: $after, where: { language: $language, status: PUBLISH }) {
    pageInfo {
      endCursor
      hasNextPage
    }
    nodes {
      id
      slug
      uri
      modified
      title
      excerpt
      isSticky
      categories {
        nodes {
          slug
        }
      }
      translation(language: $translationLanguage) {
        id
        slug
      }
    }
  }
}`

const categoriesQuery = `
query CategoriesByLocale($language: LanguageCodeFilterEnum!, $translationLanguage: LanguageCodeEnum!) {
  categories(first: 100, where: { language: $language }) {
    nodes {
      id
      slug
      name
      translation(language: $translationLanguage) {
        id
        slug
      }
    }
  }
}`

const projectsQuery = `
query ProjectsByLocale($language: LanguageCodeFilterEnum!, $translationLanguage: LanguageCodeEnum!, $first: Int!, $after: String) {
  projects(first: $first, after: $after, where: { language: $language, status: PUBLISH }) {
    pageInfo {
      endCursor
      hasNextPage
    }
    nodes {
      id
      slug
      uri
      modified
      title
      translation(language: $translationLanguage) {
        id
        slug
      }
    }
  }
}`

const blogPageSettingsQuery = `
query BlogPageSettings {
  readingSettings {
    pageForPosts
  }
}`

const blogPageByIDQuery = `
query BlogPageByID($id: ID!, $translationLanguage: LanguageCodeEnum!) {
  page(id: $id, idType: DATABASE_ID) {
    slug
    language {
      code
    }
    translation(language: $translationLanguage) {
      slug
    }
  }
}`

const menuQuery = `
query MenuByLocation($location: MenuLocationEnum!) {
  menus(where: { location: $location }) {
    nodes {
      name
      menuItems(first: 100) {
        nodes {
          id
          label
          uri
          url
          target
          connectedNode {
            node {
              __typename
            }
          }
        }
      }
    }
  }
}`

const sendEmailMutation = `
mutation SendEmail($input: SendEmailInput!) {
  sendEmail(input: $input) {
    sent
    message
  }
}`
